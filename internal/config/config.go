package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort          string
	CORSAllowOrigins []string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret  string
	SessionTTL time.Duration

	OSSEndpoint        string
	OSSAccessKeyID     string
	OSSAccessKeySecret string
	OSSBucket          string

	GeminiAPIKey string

	GmailCredentials string
	GmailToken       string
	MailPollInterval time.Duration

	RealtimeChannel string
}

func get(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func duration(k string, def time.Duration) time.Duration {
	v := get(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] %s=%q is not a duration, using %s", k, v, def)
		return def
	}
	return d
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using process environment")
	}

	var origins []string
	for _, o := range strings.Split(get("CORS_ALLOW_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		AppPort:          get("APP_PORT", "8080"),
		CORSAllowOrigins: origins,

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "password"),
		DBName:     get("DB_NAME", "placement"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		JWTSecret:  get("JWT_SECRET", ""),
		SessionTTL: duration("SESSION_TTL", 12*time.Hour),

		OSSEndpoint:        get("OSS_ENDPOINT", ""),
		OSSAccessKeyID:     get("OSS_ACCESS_KEY_ID", ""),
		OSSAccessKeySecret: get("OSS_ACCESS_KEY_SECRET", ""),
		OSSBucket:          get("OSS_BUCKET", "student-documents"),

		GeminiAPIKey: get("GEMINI_API_KEY", ""),

		GmailCredentials: get("GMAIL_CREDENTIALS", "credential.json"),
		GmailToken:       get("GMAIL_TOKEN", "token.json"),
		MailPollInterval: duration("MAIL_POLL_INTERVAL", 15*time.Minute),

		RealtimeChannel: get("REALTIME_CHANNEL", "students_changed"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// URL is the same connection as DSN in URL form, for the LISTEN connection.
func (c *Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func (c *Config) StorageEnabled() bool {
	return c.OSSEndpoint != "" && c.OSSAccessKeyID != "" && c.OSSAccessKeySecret != ""
}
