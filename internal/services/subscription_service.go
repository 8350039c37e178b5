package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/razorpay/razorpay-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/casahub/backend/internal/models"
)

// SubscriptionService sells premium plans. A verified payment stamps the
// premium block on the user document; nothing else in the system reads the
// plans collection directly.
type SubscriptionService struct {
	plans     *mongo.Collection
	razorpay  *razorpay.Client
	keySecret string
	userSvc   *UserService
}

func NewSubscriptionService(db *mongo.Database, client *razorpay.Client, keySecret string, users *UserService) *SubscriptionService {
	return &SubscriptionService{
		plans:     db.Collection(colSubscriptionPlans),
		razorpay:  client,
		keySecret: keySecret,
		userSvc:   users,
	}
}

// ListPlans returns the active plans, cheapest first.
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	cur, err := s.plans.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	plans := []models.SubscriptionPlan{}
	for cur.Next(ctx) {
		var plan models.SubscriptionPlan
		if err := cur.Decode(&plan); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, cur.Err()
}

func (s *SubscriptionService) planByDuration(ctx context.Context, duration string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := s.plans.FindOne(ctx, bson.M{"duration": duration, "is_active": true}).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreateOrder opens a Razorpay order for the plan matching the requested
// duration and returns the order id the client pays against.
func (s *SubscriptionService) CreateOrder(ctx context.Context, userID, duration string) (map[string]interface{}, error) {
	plan, err := s.planByDuration(ctx, duration)
	if err != nil {
		return nil, err
	}

	rzpOrder, err := s.razorpay.Order.Create(map[string]interface{}{
		"amount":   int64(plan.Price * 100),
		"currency": "INR",
		"receipt":  fmt.Sprintf("sub_%s_%s", userID, plan.ID),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating subscription order: %w", err)
	}

	log.Printf("[Subscriptions] Opened %s order for user %s", duration, userID)
	return rzpOrder, nil
}

// VerifyPayment validates the payment signature and activates premium on the
// buyer's account for the plan duration.
func (s *SubscriptionService) VerifyPayment(ctx context.Context, userID string, req *models.VerifySubscriptionRequest) (*models.User, error) {
	if !VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.keySecret) {
		return nil, ErrBadSignature
	}

	plan, err := s.planByDuration(ctx, req.Duration)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.userSvc.SetPremium(ctx, userID, models.Premium{
		IsPremium: true,
		Category:  plan.Type,
		Duration:  plan.Duration,
		StartedAt: now,
		ExpiresAt: models.PremiumExpiry(plan.Duration, now),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Subscriptions] User %s is premium until %s", userID, user.Premium.ExpiresAt.Format(time.RFC3339))
	return user, nil
}

// CompleteRegistration finishes a new user's signup. Free-tier signups need a
// coupon code; paid tiers need a verified payment and get premium stamped
// alongside the profile fields.
func (s *SubscriptionService) CompleteRegistration(ctx context.Context, userID string, req *models.CompleteRegistrationRequest) (*models.User, error) {
	duration := models.CanonicalDuration(req.SubscriptionType)
	switch {
	case strings.EqualFold(strings.TrimSpace(req.SubscriptionType), models.SubscriptionTierFree):
		if strings.TrimSpace(req.CouponCode) == "" {
			return nil, ErrInvalidCoupon
		}
	case duration != "":
		if !VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.keySecret) {
			return nil, ErrBadSignature
		}
	default:
		return nil, ErrInvalidTier
	}

	user, err := s.userSvc.CompleteProfile(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if duration != "" {
		now := time.Now().UTC()
		user, err = s.userSvc.SetPremium(ctx, userID, models.Premium{
			IsPremium: true,
			Category:  "premium",
			Duration:  duration,
			StartedAt: now,
			ExpiresAt: models.PremiumExpiry(duration, now),
		})
		if err != nil {
			return nil, err
		}
	}

	log.Printf("[Subscriptions] User %s completed registration (%s)", userID, strings.ToLower(req.SubscriptionType))
	return user, nil
}
