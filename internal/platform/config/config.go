// Package config loads server settings and named properties from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Auth providers accepted in AUTH_PROVIDER.
const (
	AuthNone     = "none"
	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

// DefaultEnvFile is loaded when present; a missing default file is not an error.
const DefaultEnvFile = ".env"

// ErrMissingProperty is returned by Require for an unset property.
var ErrMissingProperty = errors.New("missing required configuration property")

// Config holds all server configuration.
type Config struct {
	Port       string
	LogLevel   string
	Auth       AuthConfig
	Properties Properties
}

// AuthConfig selects and configures the token verifier.
type AuthConfig struct {
	Provider            string
	FirebaseProjectID   string
	FirebaseCredentials string
	JWTSecret           string
	JWTIssuer           string
	JWTAudience         string
}

// Load reads envFile (if any) into the environment and builds the Config.
// Variables already set in the environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Auth: AuthConfig{
			Provider: strings.ToLower(getEnv("AUTH_PROVIDER", AuthNone)),
			FirebaseProjectID: firstNonEmpty(
				os.Getenv("FIREBASE_PROJECT_ID"),
				os.Getenv("GOOGLE_CLOUD_PROJECT"),
			),
			FirebaseCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			JWTSecret:           os.Getenv("JWT_SECRET"),
			JWTIssuer:           os.Getenv("JWT_ISSUER"),
			JWTAudience:         os.Getenv("JWT_AUDIENCE"),
		},
		Properties: EnvProperties(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected auth provider is fully configured.
func (c *Config) Validate() error {
	switch c.Auth.Provider {
	case AuthNone:
	case AuthFirebase:
		if c.Auth.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required when AUTH_PROVIDER=firebase")
		}
	case AuthJWT:
		if c.Auth.JWTSecret == "" {
			return errors.New("JWT_SECRET is required when AUTH_PROVIDER=jwt")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}
	return nil
}

// Require fails when any of keys cannot be resolved, so a missing property stops
// the server at startup instead of surfacing on a request.
func (c *Config) Require(keys ...string) error {
	for _, key := range keys {
		if _, ok := c.Properties.Lookup(key); !ok {
			return fmt.Errorf("%w: %s", ErrMissingProperty, key)
		}
	}
	return nil
}

func loadEnvFile(name string) error {
	explicit := name != ""
	if !explicit {
		name = DefaultEnvFile
	}
	err := godotenv.Load(name)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", name, err)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
