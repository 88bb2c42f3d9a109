package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const DATE_PARSE_FORMAT = "2006-01-02"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// Config is built once in main and handed to the components that need
// it. Nothing reads business or mail settings from the environment
// after startup.
type Config struct {
	Port           string
	Env            string
	JWTSecret      string
	AllowedOrigins []string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	OwnerEmail   string

	BusinessName  string
	BusinessPhone string
	BusinessCity  string
	BusinessLogo  string

	AdvancePercent int
	UPIID          string

	MediaRoot     string
	MediaBaseURL  string
	PublicBaseURL string
	S3MediaBucket string
	RedisURL      string

	AdminUsername string
	AdminPassword string

	MailTimeout   time.Duration
	MailQueueSize int
	MailWorkers   int
}

func Load() *Config {
	cfg := &Config{
		Port:           getenv("PORT", "9090"),
		Env:            getenv("API_ENV", "local"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FromEmail:    getenv("FROM_EMAIL", os.Getenv("SMTP_USERNAME")),
		FromName:     getenv("FROM_NAME", getenv("BUSINESS_NAME", "Friends Events Decorative")),
		OwnerEmail:   os.Getenv("OWNER_EMAIL"),

		BusinessName:  getenv("BUSINESS_NAME", "Friends Events Decorative"),
		BusinessPhone: os.Getenv("BUSINESS_PHONE"),
		BusinessCity:  os.Getenv("BUSINESS_CITY"),
		BusinessLogo:  os.Getenv("BUSINESS_LOGO"),

		AdvancePercent: getenvInt("ADVANCE_PERCENT", 30),
		UPIID:          os.Getenv("UPI_ID"),

		MediaRoot:     getenv("MEDIA_ROOT", "media"),
		MediaBaseURL:  getenv("MEDIA_BASE_URL", "/media"),
		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:9090"),
		S3MediaBucket: os.Getenv("S3_MEDIA_BUCKET"),
		RedisURL:      os.Getenv("REDIS_HOST"),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		MailTimeout:   time.Duration(getenvInt("MAIL_TIMEOUT_SECONDS", 15)) * time.Second,
		MailQueueSize: getenvInt("MAIL_QUEUE_SIZE", 64),
		MailWorkers:   getenvInt("MAIL_WORKERS", 2),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
