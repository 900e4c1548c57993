package config

import (
	"testing"
	"time"
)

func TestPasswordPolicyValidate(t *testing.T) {
	policy := PasswordPolicy{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
		RequireSpecial:   true,
	}

	if err := policy.Validate("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if err := policy.Validate("lowercase1!"); err == nil {
		t.Fatalf("expected error for missing uppercase")
	}
	if err := policy.Validate("UPPERCASE1!"); err == nil {
		t.Fatalf("expected error for missing lowercase")
	}
	if err := policy.Validate("NoNumber!"); err == nil {
		t.Fatalf("expected error for missing number")
	}
	if err := policy.Validate("NoSpecial1"); err == nil {
		t.Fatalf("expected error for missing special")
	}
	if err := policy.Validate("GoodPass1!"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}

func TestPasswordPolicyDefaultsLengthOnly(t *testing.T) {
	policy := PasswordPolicy{MinLength: 6}

	if err := policy.Validate("pw123"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if err := policy.Validate("pw123456"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := getEnv("TEST_STRING", "default"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := getEnv("MISSING_STRING", "default"); got != "default" {
		t.Fatalf("expected default, got %q", got)
	}

	t.Setenv("TEST_HOURS", "3")
	if got := getHourEnv("TEST_HOURS", 12); got != 3*time.Hour {
		t.Fatalf("expected 3h, got %v", got)
	}
	if got := getHourEnv("MISSING_HOURS", 12); got != 12*time.Hour {
		t.Fatalf("expected default hours, got %v", got)
	}

	t.Setenv("TEST_DAYS", "7")
	if got := getDayEnv("TEST_DAYS", 30); got != 7*24*time.Hour {
		t.Fatalf("expected 168h, got %v", got)
	}

	t.Setenv("TEST_BOOL", "true")
	if got := getBoolEnv("TEST_BOOL", false); got != true {
		t.Fatalf("expected true, got %v", got)
	}
	t.Setenv("TEST_BOOL", "notabool")
	if got := getBoolEnv("TEST_BOOL", false); got != false {
		t.Fatalf("expected default false, got %v", got)
	}

	t.Setenv("TEST_INT", "42")
	if got := getIntEnv("TEST_INT", 1); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MYSQL_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}

	t.Setenv("JWT_SECRET", "secret")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when MYSQL_DSN is missing")
	}

	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/devcamper?parseTime=true")
	t.Setenv("APP_ENV", "staging")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown APP_ENV")
	}

	t.Setenv("APP_ENV", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production mode")
	}
	if cfg.VerificationTokenTTL != 12*time.Hour {
		t.Fatalf("expected default verification TTL, got %v", cfg.VerificationTokenTTL)
	}
	if cfg.PasswordPolicy.MinLength != 6 {
		t.Fatalf("expected default min length 6, got %d", cfg.PasswordPolicy.MinLength)
	}
}
