package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress string
	MongoURI      string
	MongoDatabase string

	JWTSecret     string
	JWTExpiration time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string

	SMSEndpoint string
	SMSAPIKey   string

	FirebaseProjectID       string
	FirebaseCredentialsFile string

	OTPExpiration time.Duration
}

func Load() *Config {
	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "casahub"),

		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration: 30 * 24 * time.Hour,

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),

		SMSEndpoint: getEnv("SMS_ENDPOINT", "https://2factor.in/API/V1"),
		SMSAPIKey:   getEnv("SMS_API_KEY", ""),

		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),

		OTPExpiration: 5 * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
