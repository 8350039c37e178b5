package models

import "time"

type OTP struct {
	ID          string    `json:"id" bson:"_id"`
	PhoneNumber string    `json:"phoneNumber" bson:"phone_number"`
	Code        string    `json:"-" bson:"code"`
	IsVerified  bool      `json:"isVerified" bson:"is_verified"`
	ExpiresAt   time.Time `json:"expiresAt" bson:"expires_at"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

type RequestOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

func (r *RequestOTPRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.PhoneNumber == "" {
		errors["phoneNumber"] = "Phone number is required"
	}

	return errors
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

func (r *VerifyOTPRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.PhoneNumber == "" {
		errors["phoneNumber"] = "Phone number is required"
	}
	if r.OTP == "" {
		errors["otp"] = "OTP is required"
	}

	return errors
}

// VerifyFirebaseOTPRequest carries a Firebase phone-auth ID token proving
// possession of the phone number.
type VerifyFirebaseOTPRequest struct {
	IDToken     string `json:"idToken"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r *VerifyFirebaseOTPRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.IDToken == "" {
		errors["idToken"] = "ID token is required"
	}
	if r.PhoneNumber == "" {
		errors["phoneNumber"] = "Phone number is required"
	}

	return errors
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
}
