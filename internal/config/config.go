package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the process environment.
// Fields under the "server only" comment must never be serialized to a client.
type Config struct {
	Env            string
	Port           string
	AllowedOrigins []string

	MongoURI      string
	MongoDatabase string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	StripePublishableKey string
	MailFrom             string
	ContactInbox         string

	// server only
	MongoAdminURI      string
	StripeSecretKey    string
	ResendAPIKey       string
	OperatorSecretHash string
}

// Load reads a .env file when present and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Env:                  get("APP_ENV", "production"),
		Port:                 get("API_PORT", "8080"),
		AllowedOrigins:       splitList(get("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		MongoURI:             get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:        get("MONGO_DATABASE", "nail_salon"),
		JWTSecret:            get("JWT_SECRET", ""),
		StripePublishableKey: get("STRIPE_PUBLISHABLE_KEY", ""),
		MailFrom:             get("MAIL_FROM", "bookings@localhost"),
		ContactInbox:         get("CONTACT_INBOX", ""),
		MongoAdminURI:        get("MONGO_ADMIN_URI", ""),
		StripeSecretKey:      get("STRIPE_SECRET_KEY", ""),
		ResendAPIKey:         get("RESEND_API_KEY", ""),
		OperatorSecretHash:   get("OPERATOR_SECRET_HASH", ""),
	}

	ttl, err := time.ParseDuration(get("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	cost, err := strconv.Atoi(get("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("BCRYPT_COST: %w", err)
	}
	cfg.BcryptCost = cost

	if cfg.MongoAdminURI == "" {
		return nil, errors.New("MONGO_ADMIN_URI is required")
	}
	return cfg, nil
}

// RequireJWT reports whether the token secret is set. The admin CLI does not need it.
func (c *Config) RequireJWT() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func (c *Config) Development() bool {
	return c.Env == "development"
}

// MailEnabled reports whether outbound email can be sent.
func (c *Config) MailEnabled() bool {
	return c.ResendAPIKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
