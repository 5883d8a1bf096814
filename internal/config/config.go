package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	BackendLocal = "local"
	BackendDrive = "drive"
	BackendGCS   = "gcs"
)

// Config holds everything the API process reads from the environment.
type Config struct {
	Port        int
	BaseURL     string
	FrontendURL string
	Env         string
	LogLevel    string

	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	UploadDir       string
	MaxResumeBytes  int64
	StorageBackend  string
	KeepLocalBackup bool

	DriveCredentialsFile string
	DriveFolderID        string
	GCSBucket            string
	GCSCredentialsFile   string

	MailUser             string
	GmailCredentialsFile string
	GmailTokenFile       string

	GeminiAPIKey string
	GeminiModel  string

	RecommendationSchedule string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// A missing .env is normal in containers.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:                   v.GetInt("PORT"),
		BaseURL:                v.GetString("BASE_URL"),
		FrontendURL:            v.GetString("FRONTEND_URL"),
		Env:                    v.GetString("APP_ENV"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		DatabaseURL:            v.GetString("DATABASE_URL"),
		JWTSecret:              v.GetString("JWT_SECRET_KEY"),
		JWTTTL:                 v.GetDuration("JWT_TTL"),
		UploadDir:              v.GetString("UPLOAD_DIR"),
		MaxResumeBytes:         v.GetInt64("MAX_RESUME_BYTES"),
		StorageBackend:         strings.ToLower(v.GetString("STORAGE_BACKEND")),
		KeepLocalBackup:        v.GetBool("KEEP_LOCAL_BACKUP"),
		DriveCredentialsFile:   v.GetString("GOOGLE_DRIVE_CREDENTIALS_FILE"),
		DriveFolderID:          v.GetString("GOOGLE_DRIVE_FOLDER_ID"),
		GCSBucket:              v.GetString("GCS_BUCKET"),
		GCSCredentialsFile:     v.GetString("GCS_CREDENTIALS_FILE"),
		MailUser:               v.GetString("MAIL_USER"),
		GmailCredentialsFile:   v.GetString("GMAIL_CREDENTIALS_FILE"),
		GmailTokenFile:         v.GetString("GMAIL_TOKEN_FILE"),
		GeminiAPIKey:           v.GetString("GEMINI_API_KEY"),
		GeminiModel:            v.GetString("GEMINI_MODEL"),
		RecommendationSchedule: v.GetString("RECOMMENDATION_SCHEDULE"),
		RateLimitRPS:           v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:         v.GetInt("RATE_LIMIT_BURST"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGmailFiles reads only the Gmail OAuth file locations, for tools that
// do not need the rest of the configuration.
func LoadGmailFiles() (credentialsFile, tokenFile string) {
	_ = godotenv.Load()
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v.GetString("GMAIL_CREDENTIALS_FILE"), v.GetString("GMAIL_TOKEN_FILE")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 5002)
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=password dbname=hirenest port=5432 sslmode=disable")
	v.SetDefault("JWT_TTL", "10m")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_RESUME_BYTES", 5*1024*1024)
	v.SetDefault("STORAGE_BACKEND", BackendLocal)
	v.SetDefault("KEEP_LOCAL_BACKUP", true)
	v.SetDefault("GMAIL_CREDENTIALS_FILE", "credential.json")
	v.SetDefault("GMAIL_TOKEN_FILE", "token.json")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("RECOMMENDATION_SCHEDULE", "@every 30m")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks required values and backend-specific settings.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.MaxResumeBytes <= 0 {
		errs = append(errs, errors.New("MAX_RESUME_BYTES must be positive"))
	}

	switch c.StorageBackend {
	case BackendLocal:
	case BackendDrive:
		if c.DriveFolderID == "" {
			errs = append(errs, errors.New("GOOGLE_DRIVE_FOLDER_ID is required for the drive backend"))
		}
		if c.DriveCredentialsFile == "" {
			errs = append(errs, errors.New("GOOGLE_DRIVE_CREDENTIALS_FILE is required for the drive backend"))
		}
	case BackendGCS:
		if c.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required for the gcs backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	return errors.Join(errs...)
}
