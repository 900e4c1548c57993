package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	AppEnv    string
	HTTPHost  string
	HTTPPort  string
	PublicURL string
	MySQLDSN  string

	JWTSecret            string
	JWTExpire            time.Duration
	CookieExpire         time.Duration
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
	TokenSweepInterval   time.Duration

	SMTP           SMTPConfig
	PasswordPolicy PasswordPolicy
	LogLevel       string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Email    string
	Password string
	From     string
}

type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSpecial   bool
}

func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasNumber = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSpecial = true
		}
	}

	var missing []string
	if p.RequireUppercase && !hasUpper {
		missing = append(missing, "uppercase letter")
	}
	if p.RequireLowercase && !hasLower {
		missing = append(missing, "lowercase letter")
	}
	if p.RequireNumber && !hasNumber {
		missing = append(missing, "number")
	}
	if p.RequireSpecial && !hasSpecial {
		missing = append(missing, "special character")
	}

	if len(missing) > 0 {
		return fmt.Errorf("password must contain at least one: %s", strings.Join(missing, ", "))
	}

	return nil
}

// Load reads the environment once and returns an immutable configuration.
// Components receive the values they need explicitly; nothing reads the
// environment after startup.
func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	appEnv := getEnv("APP_ENV", EnvDevelopment)
	if appEnv != EnvDevelopment && appEnv != EnvProduction {
		return nil, fmt.Errorf("APP_ENV must be %q or %q", EnvDevelopment, EnvProduction)
	}

	port := getEnv("HTTP_PORT", "5000")

	return &Config{
		AppEnv:    appEnv,
		HTTPHost:  getEnv("HTTP_HOST", ""),
		HTTPPort:  port,
		PublicURL: getEnv("PUBLIC_URL", "http://localhost:"+port),
		MySQLDSN:  mysqlDSN,

		JWTSecret:            jwtSecret,
		JWTExpire:            getDayEnv("JWT_EXPIRE_DAYS", 30),
		CookieExpire:         getDayEnv("JWT_COOKIE_EXPIRE_DAYS", 30),
		VerificationTokenTTL: getHourEnv("VERIFICATION_TOKEN_EXPIRE_HOURS", 12),
		ResetTokenTTL:        getHourEnv("RESET_TOKEN_EXPIRE_HOURS", 1),
		TokenSweepInterval:   getHourEnv("TOKEN_SWEEP_INTERVAL_HOURS", 1),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getIntEnv("SMTP_PORT", 25),
			Email:    getEnv("SMTP_EMAIL", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("FROM_EMAIL", "noreply@devcamper.io"),
		},
		PasswordPolicy: loadPasswordPolicy(),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDayEnv(key string, defaultDays int) time.Duration {
	return time.Duration(getIntEnv(key, defaultDays)) * 24 * time.Hour
}

func getHourEnv(key string, defaultHours int) time.Duration {
	return time.Duration(getIntEnv(key, defaultHours)) * time.Hour
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func loadPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        getIntEnv("PASSWORD_MIN_LENGTH", 6),
		RequireUppercase: getBoolEnv("PASSWORD_REQUIRE_UPPERCASE", false),
		RequireLowercase: getBoolEnv("PASSWORD_REQUIRE_LOWERCASE", false),
		RequireNumber:    getBoolEnv("PASSWORD_REQUIRE_NUMBER", false),
		RequireSpecial:   getBoolEnv("PASSWORD_REQUIRE_SPECIAL", false),
	}
}
