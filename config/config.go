package config

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	once sync.Once
	v    *viper.Viper
)

// AppConfig is the typed view over the environment used at startup.
type AppConfig struct {
	App        App
	Database   Database
	Redis      Redis
	JWT        JWT
	Cloudinary Cloudinary
	MinIO      MinIO
	SMTP       SMTP
	WhatsApp   WhatsApp
	Checkout   Checkout
	PDF        PDF
	Log        Log
	Places     Places
}

type App struct {
	Name        string
	Env         string
	Port        string
	PublicURL   string
	CORSOrigins string
	BodyLimit   int
}

type Database struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	LogLevel string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWT struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// WhatsApp holds the Graph API settings used by the catalog sync.
type WhatsApp struct {
	BaseURL     string
	Version     string
	CatalogID   string
	AccessToken string
	Timeout     time.Duration
	RetryCount  int
	MaxAttempts int
	Currency    string
}

type Checkout struct {
	MerchantCode string
	HashSecret   string
	PayURL       string
}

type PDF struct {
	ChromeURL string
	Timeout   time.Duration
	NoSandbox bool
}

type Log struct {
	Level  string
	Format string
	Output string
}

type Places struct {
	BaseURL string
	APIKey  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "travel-manager")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8002")
	v.SetDefault("APP_URL", "http://localhost:8002")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("BODY_LIMIT_MB", 100)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "travel_manager")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("JWT_ACCESS_TTL", "60m")
	v.SetDefault("JWT_REFRESH_TTL", "168h")

	v.SetDefault("CLOUDINARY_FOLDER", "travel")
	v.SetDefault("MINIO_BUCKET", "travel-documents")

	v.SetDefault("SMTP_PORT", 587)

	v.SetDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com")
	v.SetDefault("WHATSAPP_API_VERSION", "v19.0")
	v.SetDefault("WHATSAPP_TIMEOUT", "20s")
	v.SetDefault("WHATSAPP_RETRY_COUNT", 3)
	v.SetDefault("WHATSAPP_MAX_SYNC_ATTEMPTS", 5)
	v.SetDefault("WHATSAPP_CURRENCY", "INR")

	v.SetDefault("PDF_TIMEOUT", "30s")

	v.SetDefault("PLACES_BASE_URL", "https://maps.vietmap.vn/api")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_OUTPUT", "stdout")
}

func instance() *viper.Viper {
	once.Do(func() {
		// .env is optional, system env wins over it
		_ = godotenv.Load()
		v = viper.New()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		setDefaults(v)
	})
	return v
}

// Config returns the value of an environment key, falling back to defaults.
func Config(key string) string {
	return instance().GetString(key)
}

// Load builds the typed configuration and validates it.
func Load() (*AppConfig, error) {
	v := instance()
	cfg := &AppConfig{
		App: App{
			Name:        v.GetString("APP_NAME"),
			Env:         v.GetString("APP_ENV"),
			Port:        v.GetString("APP_PORT"),
			PublicURL:   v.GetString("APP_URL"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
			BodyLimit:   v.GetInt("BODY_LIMIT_MB") * 1024 * 1024,
		},
		Database: Database{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("CACHE_TTL"),
		},
		JWT: JWT{
			Secret:     v.GetString("JWT_SECRET"),
			AccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
		},
		Cloudinary: Cloudinary{
			CloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    v.GetString("CLOUDINARY_API_KEY"),
			APISecret: v.GetString("CLOUDINARY_API_SECRET"),
			Folder:    v.GetString("CLOUDINARY_FOLDER"),
		},
		MinIO: MinIO{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		SMTP: SMTP{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		WhatsApp: WhatsApp{
			BaseURL:     v.GetString("WHATSAPP_BASE_URL"),
			Version:     v.GetString("WHATSAPP_API_VERSION"),
			CatalogID:   v.GetString("WHATSAPP_CATALOG_ID"),
			AccessToken: v.GetString("WHATSAPP_ACCESS_TOKEN"),
			Timeout:     v.GetDuration("WHATSAPP_TIMEOUT"),
			RetryCount:  v.GetInt("WHATSAPP_RETRY_COUNT"),
			MaxAttempts: v.GetInt("WHATSAPP_MAX_SYNC_ATTEMPTS"),
			Currency:    v.GetString("WHATSAPP_CURRENCY"),
		},
		Checkout: Checkout{
			MerchantCode: v.GetString("CHECKOUT_MERCHANT_CODE"),
			HashSecret:   v.GetString("CHECKOUT_HASH_SECRET"),
			PayURL:       v.GetString("CHECKOUT_PAY_URL"),
		},
		PDF: PDF{
			ChromeURL: v.GetString("CHROME_REMOTE_URL"),
			Timeout:   v.GetDuration("PDF_TIMEOUT"),
			NoSandbox: v.GetBool("CHROME_NO_SANDBOX"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		Places: Places{
			BaseURL: v.GetString("PLACES_BASE_URL"),
			APIKey:  v.GetString("PLACES_API_KEY"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *AppConfig) validate() error {
	if c.IsProduction() && c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.Database.Port <= 0 {
		return errors.New("DB_PORT must be a positive number")
	}
	return nil
}
