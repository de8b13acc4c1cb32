package config

import (
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

// Enabled reports whether export archiving to R2 is configured.
func (r R2) Enabled() bool {
	return r.AccountID != "" && r.AccessKey != "" && r.SecretKey != "" && r.BucketName != ""
}

type TextGen struct {
	URL     string
	Model   string
	Timeout time.Duration
}

type Config struct {
	Port               string
	FrontendURL        string
	SecretKey          string
	CookieName         string
	SessionTTL         time.Duration
	SessionSweep       string
	MaxSessions        int
	DefaultPostingTime string
	RedisURI           string
	TextGen            TextGen
	R2                 R2
}

func LoadConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "3000"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:          getEnv("SECRET_KEY", ""),
		CookieName:         getEnv("COOKIE_NAME", "postcal_session"),
		SessionTTL:         getDuration("SESSION_TTL", 12*time.Hour),
		SessionSweep:       getEnv("SESSION_SWEEP", "@every 00h10m00s"),
		MaxSessions:        getInt("MAX_SESSIONS", 10000),
		DefaultPostingTime: getEnv("DEFAULT_POSTING_TIME", "09:00"),
		RedisURI:           getEnv("REDIS_URI", ""),
		TextGen: TextGen{
			URL:     getEnv("TEXTGEN_URL", "http://localhost:11434/api/generate"),
			Model:   getEnv("TEXTGEN_MODEL", "llama3"),
			Timeout: getDuration("TEXTGEN_TIMEOUT", 60*time.Second),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n >= 0 {
		return n
	}
	return defaultValue
}
