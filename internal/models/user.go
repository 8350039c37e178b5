package models

import (
	"regexp"
	"time"
)

// User roles. Realtors and Professionals own projects; Product Sellers own
// products; Home Owners own neither.
const (
	RoleRealtor       = "Realtor"
	RoleProfessional  = "Professionals"
	RoleProductSeller = "Product Seller"
	RoleHomeOwner     = "Home Owner"
	RoleAdmin         = "Admin"
)

type CompanyAddress struct {
	Place   string `json:"place,omitempty" bson:"place,omitempty"`
	Pincode int    `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

type CompanyDetails struct {
	CompanyName      string         `json:"companyName,omitempty" bson:"company_name,omitempty"`
	CompanyEmail     string         `json:"companyEmail,omitempty" bson:"company_email,omitempty"`
	CompanyPhone     string         `json:"companyPhone,omitempty" bson:"company_phone,omitempty"`
	CompanyGstNumber string         `json:"companyGstNumber,omitempty" bson:"company_gst_number,omitempty"`
	Experience       int            `json:"experience,omitempty" bson:"experience,omitempty"`
	CompanyAddress   CompanyAddress `json:"companyAddress,omitempty" bson:"company_address,omitempty"`
	Bio              string         `json:"bio,omitempty" bson:"bio,omitempty"`
}

type Address struct {
	Place   string `json:"place,omitempty" bson:"place,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

// DeliveryAddress is a shipping/service address held on the user document.
type DeliveryAddress struct {
	ID        string `json:"id" bson:"_id"`
	FullName  string `json:"fullName" bson:"full_name"`
	Mobile    string `json:"mobile" bson:"mobile"`
	AltMobile string `json:"altMobile,omitempty" bson:"alt_mobile,omitempty"`
	Pincode   string `json:"pincode" bson:"pincode"`
	District  string `json:"district,omitempty" bson:"district,omitempty"`
	City      string `json:"city" bson:"city"`
	Address   string `json:"address" bson:"address"`
	Landmark  string `json:"landmark,omitempty" bson:"landmark,omitempty"`
}

// DefaultProfileImage is set when registration completes without an upload.
const DefaultProfileImage = "https://static.vecteezy.com/system/resources/previews/009/734/564/non_2x/default-avatar-profile-icon-of-social-media-user-vector.jpg"

type MarketingReferral struct {
	EmployeeName string `json:"employeeName,omitempty" bson:"employee_name,omitempty"`
	EmployeeCode string `json:"employeeCode,omitempty" bson:"employee_code,omitempty"`
}

type AffiliateReferral struct {
	FirmName               string `json:"firmName,omitempty" bson:"firm_name,omitempty"`
	RegisteredMobileNumber string `json:"registeredMobileNumber,omitempty" bson:"registered_mobile_number,omitempty"`
}

// Referral records who brought the user in; at most one branch is set.
type Referral struct {
	Marketing *MarketingReferral `json:"marketing,omitempty" bson:"marketing,omitempty"`
	Affiliate *AffiliateReferral `json:"affiliate,omitempty" bson:"affiliate,omitempty"`
}

type Premium struct {
	IsPremium bool      `json:"isPremium" bson:"is_premium"`
	Category  string    `json:"category,omitempty" bson:"category,omitempty"`
	Duration  string    `json:"duration,omitempty" bson:"duration,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty" bson:"started_at,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty" bson:"expires_at,omitempty"`
}

type User struct {
	ID           string            `json:"id" bson:"_id"`
	PhoneNumber  string            `json:"phoneNumber" bson:"phone_number"`
	FirstName    string            `json:"fname,omitempty" bson:"fname,omitempty"`
	LastName     string            `json:"lname,omitempty" bson:"lname,omitempty"`
	Email        string            `json:"email,omitempty" bson:"email,omitempty"`
	Role         string            `json:"role,omitempty" bson:"role,omitempty"`
	Type         string            `json:"type,omitempty" bson:"type,omitempty"`
	Age          int               `json:"age,omitempty" bson:"age,omitempty"`
	Gender       string            `json:"gender,omitempty" bson:"gender,omitempty"`
	ProfileImage string            `json:"profileImage,omitempty" bson:"profile_image,omitempty"`
	Address      Address           `json:"address,omitempty" bson:"address,omitempty"`
	Company      CompanyDetails    `json:"companyDetails,omitempty" bson:"company_details,omitempty"`
	Delivery     []DeliveryAddress `json:"deliveryAddresses,omitempty" bson:"delivery_addresses,omitempty"`
	BlockedUsers []string          `json:"blockedUsers" bson:"blocked_users"`
	Referral     *Referral         `json:"referral,omitempty" bson:"referral,omitempty"`
	Premium      Premium           `json:"premium,omitempty" bson:"premium,omitempty"`
	DeviceToken  string            `json:"-" bson:"device_token,omitempty"`
	FlagState    `bson:",inline"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// UserWithListings is a user record with the child records the search and
// profile endpoints attach. Both slices are always present, never nil.
type UserWithListings struct {
	User
	Projects []Project `json:"projects"`
	Products []Product `json:"products"`
}

type UpdateUserRequest struct {
	FirstName    string          `json:"fname"`
	LastName     string          `json:"lname"`
	ProfileImage string          `json:"profileImage"`
	Role         string          `json:"role"`
	Type         string          `json:"type"`
	Email        string          `json:"email"`
	Company      *CompanyDetails `json:"companyDetails"`
	Address      *Address        `json:"address"`
	Age          int             `json:"age"`
	Gender       string          `json:"gender"`
	DeviceToken  string          `json:"token"`
}

type AddAddressRequest struct {
	FullName  string `json:"fullName"`
	Mobile    string `json:"mobile"`
	AltMobile string `json:"altMobile"`
	Pincode   string `json:"pincode"`
	District  string `json:"district"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Landmark  string `json:"landmark"`
}

func (r *AddAddressRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.FullName == "" {
		errors["fullName"] = "Full name is required"
	}
	if r.Mobile == "" {
		errors["mobile"] = "Mobile number is required"
	}
	if r.Pincode == "" {
		errors["pincode"] = "Pincode is required"
	}
	if r.City == "" {
		errors["city"] = "City is required"
	}
	if r.Address == "" {
		errors["address"] = "Address is required"
	}

	return errors
}

// SubscriptionTierFree completes registration against a coupon instead of a
// paid plan.
const SubscriptionTierFree = "free"

type CompleteRegistrationRequest struct {
	FirstName    string          `json:"fname"`
	LastName     string          `json:"lname"`
	ProfileImage string          `json:"profileImage"`
	Role         string          `json:"role"`
	Type         string          `json:"type"`
	Email        string          `json:"email"`
	Company      *CompanyDetails `json:"companyDetails"`
	Address      *Address        `json:"address"`
	Age          int             `json:"age"`
	Gender       string          `json:"gender"`
	Referral     *Referral       `json:"referral"`

	SubscriptionType  string `json:"subscriptionType"`
	CouponCode        string `json:"couponCode"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (r *CompleteRegistrationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.FirstName == "" {
		errors["fname"] = "First name is required"
	}
	if r.LastName == "" {
		errors["lname"] = "Last name is required"
	}
	if r.Role == "" {
		errors["role"] = "Role is required"
	}
	if !ValidEmail(r.Email) {
		errors["email"] = "A valid email is required"
	}
	if r.Address == nil {
		errors["address"] = "Address is required"
	}

	return errors
}

type BlockUserRequest struct {
	UserID string `json:"userId"`
}

func (r *BlockUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.UserID == "" {
		errors["userId"] = "User ID is required"
	}

	return errors
}

type DeleteAccountRequest struct {
	Reason string `json:"reasonToDelete"`
}

func (r *DeleteAccountRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Reason == "" {
		errors["reasonToDelete"] = "Reason for deletion is required"
	}

	return errors
}

// DeletionLog records why an account was removed, kept after the user
// document itself is gone.
type DeletionLog struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"userId" bson:"user_id"`
	Reason      string    `json:"reason" bson:"reason"`
	PhoneNumber string    `json:"phoneNumber" bson:"phone_number"`
	JoinedAt    time.Time `json:"joinedAt" bson:"joined_at"`
	DeletedAt   time.Time `json:"deletedAt" bson:"deleted_at"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address. Same check the
// profile merge uses to decide whether an update value replaces the stored one.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
