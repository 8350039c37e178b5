package models

import (
	"strings"
	"time"
)

// Valid premium plan durations.
var PlanDurations = []string{"1 Month", "6 Months", "12 Months"}

// CanonicalDuration maps a case-insensitive duration ("6 months") to its
// stored form, or "" when it names no plan duration.
func CanonicalDuration(s string) string {
	for _, d := range PlanDurations {
		if strings.EqualFold(strings.TrimSpace(s), d) {
			return d
		}
	}
	return ""
}

type SubscriptionPlan struct {
	ID          string    `json:"id" bson:"_id"`
	Duration    string    `json:"duration" bson:"duration"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Type        string    `json:"type,omitempty" bson:"type,omitempty"`
	IsActive    bool      `json:"isActive" bson:"is_active"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

type CreateSubscriptionRequest struct {
	Duration string `json:"duration"`
}

func (r *CreateSubscriptionRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Duration == "" {
		errors["duration"] = "Duration is required"
	}

	return errors
}

type VerifySubscriptionRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	Duration          string `json:"duration"`
}

func (r *VerifySubscriptionRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.RazorpayOrderID == "" {
		errors["razorpay_order_id"] = "Order ID is required"
	}
	if r.RazorpayPaymentID == "" {
		errors["razorpay_payment_id"] = "Payment ID is required"
	}
	if r.RazorpaySignature == "" {
		errors["razorpay_signature"] = "Signature is required"
	}
	if r.Duration == "" {
		errors["duration"] = "Duration is required"
	}

	return errors
}

// PremiumExpiry computes when a premium plan bought now runs out.
func PremiumExpiry(duration string, now time.Time) time.Time {
	switch duration {
	case "1 Month":
		return now.AddDate(0, 1, 0)
	case "6 Months":
		return now.AddDate(0, 6, 0)
	case "12 Months":
		return now.AddDate(1, 0, 0)
	}
	return now
}
