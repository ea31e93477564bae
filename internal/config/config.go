package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	AuthModeNone  = "none"
	AuthModeBasic = "basic"
	AuthModeJWT   = "jwt"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	LogLevel     string   `mapstructure:"LOG_LEVEL"`
	AuthMode     string   `mapstructure:"AUTH_MODE"`
	APIUsername  string   `mapstructure:"API_USERNAME"`
	APIPassword  string   `mapstructure:"API_PASSWORD"`
	JWTSecret    string   `mapstructure:"JWT_SECRET"`
	JWTIssuer    string   `mapstructure:"JWT_ISSUER"`
	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`
	BodyLimit    string   `mapstructure:"BODY_LIMIT"`
	SeedDemoData bool     `mapstructure:"SEED_DEMO_DATA"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AUTH_MODE", "") // inferred, see ResolvedAuthMode
	v.SetDefault("JWT_ISSUER", "healthcare")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("SEED_DEMO_DATA", false)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "AUTH_MODE", "API_USERNAME", "API_PASSWORD",
		"JWT_SECRET", "JWT_ISSUER", "CORS_ORIGINS", "BODY_LIMIT", "SEED_DEMO_DATA",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	origins := v.GetString("CORS_ORIGINS")
	cfg.CORSOrigins = nil
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ResolvedAuthMode returns AUTH_MODE when set. Otherwise development runs
// without auth, a JWT_SECRET selects bearer tokens and anything else falls
// back to the fixed credential check.
func (c *Config) ResolvedAuthMode() string {
	if c.AuthMode != "" {
		return strings.ToLower(c.AuthMode)
	}
	if c.IsDev() {
		return AuthModeNone
	}
	if c.JWTSecret != "" {
		return AuthModeJWT
	}
	return AuthModeBasic
}

// Validate refuses configurations that would start without working auth.
func (c *Config) Validate() error {
	switch mode := c.ResolvedAuthMode(); mode {
	case AuthModeNone:
		if c.Env == "production" {
			return fmt.Errorf("AUTH_MODE %q is not allowed when ENV=production", mode)
		}
	case AuthModeBasic:
		if c.APIUsername == "" || c.APIPassword == "" {
			return fmt.Errorf("API_USERNAME and API_PASSWORD are required when AUTH_MODE is %q", mode)
		}
	case AuthModeJWT:
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters when AUTH_MODE is %q", mode)
		}
	default:
		return fmt.Errorf("AUTH_MODE must be %q, %q or %q, got %q", AuthModeNone, AuthModeBasic, AuthModeJWT, mode)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}
