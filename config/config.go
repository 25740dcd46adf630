package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the application reads from the environment.
// It is loaded once in main and injected; nothing else touches os.Getenv.
type Config struct {
	AppHost     string
	AppPort     string
	FrontendURL string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// OTP time-to-live. Configured in milliseconds (PHONE_LOGIN_OTP_TTL_MS)
	// to stay compatible with existing deployments.
	OTPTTL time.Duration

	JWTSecret    string
	JWTExpiresIn time.Duration

	// Password assigned to seeded department admin accounts.
	AdminDefaultPassword string

	TwilioAccountSID         string
	TwilioAuthToken          string
	TwilioMessagingServiceID string
	TwilioPhoneNumber        string
}

const (
	defaultOTPTTL       = 5 * time.Minute
	defaultJWTExpiresIn = 12 * time.Hour
)

// Load reads the .env file (if present) and builds the Config.
// Missing optional values fall back to defaults; JWT_SECRET is allowed to be
// empty here and is rejected at token-issuing time instead, so that read-only
// endpoints still work on a misconfigured box.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppHost:     os.Getenv("APP_HOST"),
		AppPort:     getEnv("APP_PORT", "3000"),
		FrontendURL: getEnv("FRONTEND_URL", "*"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBName:     os.Getenv("DB_DATABASE"),
		DBUser:     os.Getenv("DB_USERNAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminDefaultPassword: getEnv("ADMIN_DEFAULT_PASSWORD", "admin123"),

		TwilioAccountSID:         os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:          os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioMessagingServiceID: os.Getenv("TWILIO_MESSAGING_SERVICE_SID"),
		TwilioPhoneNumber:        os.Getenv("TWILIO_PHONE_NUMBER"),
	}

	cfg.OTPTTL = defaultOTPTTL
	if raw := os.Getenv("PHONE_LOGIN_OTP_TTL_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid PHONE_LOGIN_OTP_TTL_MS %q", raw)
		}
		cfg.OTPTTL = time.Duration(ms) * time.Millisecond
	}

	cfg.JWTExpiresIn = defaultJWTExpiresIn
	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid JWT_EXPIRES_IN %q", raw)
		}
		cfg.JWTExpiresIn = d
	}

	return cfg, nil
}

// TwilioConfigured reports whether outbound SMS can actually be sent:
// credentials plus a sending identity (messaging service or from-number).
func (c *Config) TwilioConfigured() bool {
	if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" {
		return false
	}
	return c.TwilioMessagingServiceID != "" || c.TwilioPhoneNumber != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
