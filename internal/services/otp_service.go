package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/option"

	"github.com/casahub/backend/internal/models"
)

// AuthService runs the phone-number login flow: request an OTP over SMS,
// verify it (or a Firebase phone-auth ID token), and mint a session JWT.
// Stored codes are bcrypt hashes, never plaintext.
type AuthService struct {
	otps          *mongo.Collection
	userSvc       *UserService
	sms           *SMSSender
	firebaseAuth  *firebaseauth.Client
	jwtSecret     []byte
	jwtExpiration time.Duration
	otpExpiration time.Duration
}

func NewAuthService(db *mongo.Database, users *UserService, sms *SMSSender, fbAuth *firebaseauth.Client, jwtSecret string, jwtExpiration, otpExpiration time.Duration) *AuthService {
	return &AuthService{
		otps:          db.Collection(colOTPs),
		userSvc:       users,
		sms:           sms,
		firebaseAuth:  fbAuth,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
		otpExpiration: otpExpiration,
	}
}

// NewFirebaseAuth builds the Firebase token verifier. Returns nil without
// error when no credentials are configured; Firebase login is then rejected
// at verify time.
func NewFirebaseAuth(ctx context.Context, projectID, credentialsFile string) (*firebaseauth.Client, error) {
	if credentialsFile == "" {
		log.Println("[Auth] No Firebase credentials configured, Firebase login disabled")
		return nil, nil
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID},
		option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	return app.Auth(ctx)
}

// RequestOTP generates a six digit code, stores its hash, and delivers the
// code over SMS. Requesting again before the previous code expires replaces it.
func (s *AuthService) RequestOTP(ctx context.Context, phoneNumber string) error {
	code, err := generateOTPCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.otps.UpdateOne(ctx,
		bson.M{"phone_number": phoneNumber},
		bson.M{
			"$set": bson.M{
				"code":        string(hash),
				"is_verified": false,
				"expires_at":  now.Add(s.otpExpiration),
				"created_at":  now,
			},
			"$setOnInsert": bson.M{"_id": uuid.New().String()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	if err := s.sms.SendOTP(ctx, phoneNumber, code); err != nil {
		return fmt.Errorf("sending otp: %w", err)
	}
	log.Printf("[Auth] OTP sent to %s", maskPhone(phoneNumber))
	return nil
}

// VerifyOTP checks the submitted code, creates the account on first login,
// and returns a signed session token.
func (s *AuthService) VerifyOTP(ctx context.Context, phoneNumber, code string) (*models.AuthResponse, error) {
	var otp models.OTP
	err := s.otps.FindOne(ctx, bson.M{"phone_number": phoneNumber}).Decode(&otp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}
	if time.Now().UTC().After(otp.ExpiresAt) {
		return nil, ErrInvalidOTP
	}
	if bcrypt.CompareHashAndPassword([]byte(otp.Code), []byte(code)) != nil {
		return nil, ErrInvalidOTP
	}

	// A code is single use.
	if _, err := s.otps.UpdateOne(ctx, bson.M{"_id": otp.ID}, otpConsumedUpdate(time.Now().UTC())); err != nil {
		return nil, err
	}

	return s.login(ctx, phoneNumber)
}

// otpConsumedUpdate marks a code verified and expires it on the spot so it
// cannot be replayed.
func otpConsumedUpdate(now time.Time) bson.M {
	return bson.M{"$set": bson.M{"is_verified": true, "expires_at": now}}
}

// VerifyFirebaseOTP accepts a Firebase phone-auth ID token as proof of
// possession of the phone number.
func (s *AuthService) VerifyFirebaseOTP(ctx context.Context, req *models.VerifyFirebaseOTPRequest) (*models.AuthResponse, error) {
	if s.firebaseAuth == nil {
		return nil, ErrInvalidOTP
	}
	token, err := s.firebaseAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return nil, ErrInvalidOTP
	}
	if claimed, _ := token.Claims["phone_number"].(string); claimed != "" && claimed != req.PhoneNumber {
		return nil, ErrInvalidOTP
	}

	// The ID token is the proof here, but any code we issued for this number
	// gets retired the same way the SMS path retires it.
	if _, err := s.otps.UpdateOne(ctx, bson.M{"phone_number": req.PhoneNumber}, otpConsumedUpdate(time.Now().UTC())); err != nil {
		return nil, err
	}

	return s.login(ctx, req.PhoneNumber)
}

func (s *AuthService) login(ctx context.Context, phoneNumber string) (*models.AuthResponse, error) {
	user, created, err := s.userSvc.EnsureByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	token, err := GenerateToken(user.ID, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return nil, err
	}

	message := "Login successful"
	if created {
		message = "Account created"
	}
	log.Printf("[Auth] User %s logged in", user.ID)
	return &models.AuthResponse{
		Message: message,
		Token:   token,
		Role:    user.Role,
	}, nil
}

// GenerateToken signs a session JWT whose subject is the user id.
func GenerateToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// maskPhone keeps logs free of full phone numbers.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return "******" + phone[len(phone)-4:]
}
