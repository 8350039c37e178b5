package services

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrPlanNotFound     = errors.New("subscription plan not found")
	ErrAddressNotFound  = errors.New("delivery address not found")
	ErrCategoryNotFound = errors.New("category not found")

	ErrDuplicateFlag = errors.New("entity already flagged by this user")
	ErrUnauthorized  = errors.New("not authorized to modify this resource")

	// ErrPageOutOfRange signals a well-formed empty page, not a failure;
	// list methods still return the computed pagination metadata with it.
	ErrPageOutOfRange = errors.New("page number exceeds total pages")

	ErrSelfBlock      = errors.New("cannot block or unblock yourself")
	ErrNotBlocked     = errors.New("user is not in the blocked list")
	ErrInvalidOTP     = errors.New("invalid or expired OTP")
	ErrBadSignature   = errors.New("invalid payment signature")
	ErrInvalidService = errors.New("invalid service type for this subcategory")
	ErrInvalidCoupon  = errors.New("invalid or missing coupon code")
	ErrInvalidTier    = errors.New("invalid subscription type")
)
