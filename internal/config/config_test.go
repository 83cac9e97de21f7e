package config

import (
	"net/url"
	"testing"
	"time"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("MAIL_POLL_INTERVAL", "soon")
	t.Setenv("OSS_ENDPOINT", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Errorf("AppPort = %q", cfg.AppPort)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "http://b.example" {
		t.Errorf("origins = %v", cfg.CORSAllowOrigins)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Errorf("SessionTTL = %s", cfg.SessionTTL)
	}
	if cfg.MailPollInterval != 15*time.Minute {
		t.Errorf("bad duration should fall back, got %s", cfg.MailPollInterval)
	}
	if cfg.StorageEnabled() {
		t.Error("storage enabled without endpoint")
	}
	if cfg.JWTSecret != "" {
		t.Errorf("JWTSecret must stay empty when unset, got %q", cfg.JWTSecret)
	}
	if cfg.RealtimeChannel != "students_changed" {
		t.Errorf("channel = %q", cfg.RealtimeChannel)
	}
}

func TestURLEscapesCredentials(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "p@ss/word", DBName: "placement", DBSSLMode: "require"}
	u, err := url.Parse(cfg.URL())
	if err != nil {
		t.Fatal(err)
	}
	if pw, _ := u.User.Password(); pw != "p@ss/word" {
		t.Errorf("password = %q", pw)
	}
	if u.Host != "db:5432" || u.Path != "/placement" || u.Query().Get("sslmode") != "require" {
		t.Errorf("url = %s", u)
	}
}

func TestLoadReadsJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	if got := Load().JWTSecret; got != "s3cret" {
		t.Fatalf("JWTSecret = %q", got)
	}
}
