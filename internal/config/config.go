package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// StoreBackend selects the persistence variant at startup.
type StoreBackend string

const (
	StoreRedis  StoreBackend = "redis"
	StoreMemory StoreBackend = "memory"
	StoreFile   StoreBackend = "file"
)

// Config holds all application configuration, fully resolved at startup.
// Handlers never read environment variables directly.
type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppURL           string
	Production       bool

	// Administrator bootstrap identity. The stored record is lazily
	// initialized from these on first access.
	AdminEmail        string
	AdminUsername     string
	AdminPasswordHash string

	// AdminPassword is a development-only plaintext escape hatch used
	// when no hash exists. INSECURE; forced empty in production.
	AdminPassword string

	AdminTOTPSecret string

	AuthSecret []byte
	SessionTTL time.Duration

	// AllowDemoOTP echoes the generated OTP code in the API response.
	// Debug only; must never be enabled in production.
	AllowDemoOTP bool

	StoreBackend  StoreBackend
	RedisAddr     string
	RedisPassword string
	StoreFilePath string

	SendGridAPIKey    string
	SendGridFromEmail string

	OTPCodeLength   int
	OTPCodeTTL      time.Duration
	PendingLoginTTL time.Duration
	CsrfTokenLength int
	CsrfTokenTTL    time.Duration

	LoginPagePath string
}

const (
	OrganizationName = "Lumen Studio"

	DefaultSessionTTL      = 24 * time.Hour
	DefaultPendingLoginTTL = 5 * time.Minute
	DefaultOTPCodeTTL      = 300 * time.Second
	DefaultCsrfTokenTTL    = 1 * time.Hour

	OTPCodeLength   = 6
	CsrfTokenLength = 48

	DefaultLoginPagePath = "/login"
	DefaultStoreFilePath = "data/auth-store.json"
)

// LoadConfig reads the environment once and returns the resolved,
// immutable configuration.
func LoadConfig(appName string) *Config {
	env := strings.ToLower(os.Getenv("ENV"))
	production := env == "production"

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
	}
	appURL := os.Getenv("APP_URL")

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
		utils.Logger.Warn("ADMIN_EMAIL not set, defaulting to admin@example.com")
	}
	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword != "" {
		if production {
			utils.Logger.Warn("ADMIN_PASSWORD (plaintext) is ignored in production; set ADMIN_PASSWORD_HASH")
			adminPassword = ""
		} else {
			utils.Logger.Warn("ADMIN_PASSWORD is a plaintext development fallback; do not use outside local setups")
		}
	}

	authSecret := []byte(os.Getenv("AUTH_SECRET"))
	if len(authSecret) == 0 {
		if production {
			utils.Logger.Fatal("AUTH_SECRET env var is missing")
		}
		// Random per-process secret: sessions will not survive a restart.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to generate fallback AUTH_SECRET")
		}
		authSecret = []byte(hex.EncodeToString(buf))
		utils.Logger.Warn("AUTH_SECRET not set; generated an ephemeral signing key")
	}

	sessionTTL := DefaultSessionTTL
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			utils.Logger.Warnf("Invalid SESSION_TTL '%s', using default %s", raw, DefaultSessionTTL)
		} else {
			sessionTTL = d
		}
	}

	allowDemoOTP := os.Getenv("ALLOW_DEMO_OTP") == "true"
	if allowDemoOTP && production {
		utils.Logger.Warn("ALLOW_DEMO_OTP is ignored in production")
		allowDemoOTP = false
	}

	backend := StoreMemory
	redisAddr := os.Getenv("REDIS_ADDR")
	storeFilePath := os.Getenv("STORE_FILE_PATH")
	switch strings.ToLower(os.Getenv("STORE_BACKEND")) {
	case "redis":
		backend = StoreRedis
	case "file":
		backend = StoreFile
	case "memory":
		backend = StoreMemory
	case "":
		if redisAddr != "" {
			backend = StoreRedis
		} else if storeFilePath != "" {
			backend = StoreFile
		}
	default:
		utils.Logger.Fatalf("Unknown STORE_BACKEND '%s' (want redis|memory|file)", os.Getenv("STORE_BACKEND"))
	}
	if backend == StoreRedis && redisAddr == "" {
		utils.Logger.Fatal("STORE_BACKEND=redis requires REDIS_ADDR")
	}
	if backend == StoreFile && storeFilePath == "" {
		storeFilePath = DefaultStoreFilePath
	}

	return &Config{
		OrganizationName:  OrganizationName,
		AppName:           appName,
		AppPort:           appPort,
		AppURL:            appURL,
		Production:        production,
		AdminEmail:        adminEmail,
		AdminUsername:     adminUsername,
		AdminPassword:     adminPassword,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTOTPSecret:   os.Getenv("ADMIN_TOTP_SECRET"),
		AuthSecret:        authSecret,
		SessionTTL:        sessionTTL,
		AllowDemoOTP:      allowDemoOTP,
		StoreBackend:      backend,
		RedisAddr:         redisAddr,
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		StoreFilePath:     storeFilePath,
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		OTPCodeLength:     OTPCodeLength,
		OTPCodeTTL:        DefaultOTPCodeTTL,
		PendingLoginTTL:   DefaultPendingLoginTTL,
		CsrfTokenLength:   CsrfTokenLength,
		CsrfTokenTTL:      DefaultCsrfTokenTTL,
		LoginPagePath:     DefaultLoginPagePath,
	}
}
