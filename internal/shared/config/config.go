package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"eventgallery/internal/shared/constants"
)

// Config holds all configuration for the gallery client and the reference backend
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	AllowedOrigins []string

	// Client configuration
	Client ClientConfig

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Session token signing
	Session SessionConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// File upload
	Upload UploadConfig

	// Logging
	LogLevel string
}

// ClientConfig controls the API gateway client and local session persistence
type ClientConfig struct {
	BaseURL       string
	Timeout       time.Duration // zero means no timeout
	SessionStore  string        // file, redis, memory or none
	SessionFile   string
	SessionPrefix string
	SessionTTL    time.Duration // redis store only, zero keeps keys until logout
	LogoutChannel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // sqlite or postgres
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	CacheTTL time.Duration
}

// SessionConfig holds bearer session configuration
type SessionConfig struct {
	Secret   string
	Duration time.Duration
	Issuer   string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `json:"enabled"`
	APIRequests    int           `json:"api_requests"`
	APIWindow      time.Duration `json:"api_window"`
	AuthRequests   int           `json:"auth_requests"`
	AuthWindow     time.Duration `json:"auth_window"`
	UploadRequests int           `json:"upload_requests"`
	UploadWindow   time.Duration `json:"upload_window"`
	WhitelistedIPs []string      `json:"whitelisted_ips"`
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	MaxSize   int64
	Path      string
	PublicURL string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "3000"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB
		AllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		// Client configuration
		Client: ClientConfig{
			BaseURL:       getEnv("API_BASE_URL", "http://localhost:3000/api"),
			Timeout:       getDurationEnv("HTTP_TIMEOUT", 0),
			SessionStore:  strings.ToLower(getEnv("SESSION_STORE", "file")),
			SessionFile:   getEnv("SESSION_FILE", defaultSessionFile()),
			SessionPrefix: getEnv("SESSION_KEY_PREFIX", ""),
			SessionTTL:    getDurationEnvSeconds("SESSION_TTL", 0),
			LogoutChannel: getEnv("LOGOUT_CHANNEL", constants.CHANNEL_AUTH_LOGOUT),
		},

		// Database configuration
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "gallery_db"),
			User:     getEnv("DB_USER", "gallery_user"),
			Password: getEnv("DB_PASSWORD", "gallery_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			DSN:      getEnv("DB_DSN", ""),
		},

		// Redis configuration
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			CacheTTL: getDurationEnv("REDIS_CACHE_TTL", constants.TTL_GALLERY_STATS),
		},

		// Session configuration
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", "change-me-in-production"),
			Duration: getDurationEnv("SESSION_DURATION", constants.SessionDuration),
			Issuer:   getEnv("SESSION_ISSUER", "eventgallery"),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:        getBoolEnv("RATE_LIMIT_ENABLED", true),
			APIRequests:    getIntEnv("RATE_LIMIT_API_REQUESTS", constants.RateLimitAPI.MaxRequests),
			APIWindow:      getDurationEnv("RATE_LIMIT_API_WINDOW", constants.RateLimitAPI.Window),
			AuthRequests:   getIntEnv("RATE_LIMIT_AUTH_REQUESTS", constants.RateLimitAuth.MaxRequests),
			AuthWindow:     getDurationEnv("RATE_LIMIT_AUTH_WINDOW", constants.RateLimitAuth.Window),
			UploadRequests: getIntEnv("RATE_LIMIT_UPLOAD_REQUESTS", constants.RateLimitUpload.MaxRequests),
			UploadWindow:   getDurationEnv("RATE_LIMIT_UPLOAD_WINDOW", constants.RateLimitUpload.Window),
			WhitelistedIPs: getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// File upload
		Upload: UploadConfig{
			MaxSize:   getInt64Env("MAX_UPLOAD_SIZE", constants.MaxImageSize),
			Path:      getEnv("UPLOAD_PATH", "./uploads"),
			PublicURL: getEnv("UPLOAD_PUBLIC_URL", "http://localhost:3000/uploads"),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Build composite values
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	}
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	if db.Driver == "postgres" {
		return "host=" + db.Host +
			" port=" + db.Port +
			" user=" + db.User +
			" password=" + db.Password +
			" dbname=" + db.Name +
			" sslmode=" + db.SSLMode
	}
	return "file:" + db.Name + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
}

// defaultSessionFile places the session next to the user's other config
func defaultSessionFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "eventgallery", "session.json")
	}
	return ".gallery-session.json"
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getInt64Env gets an int64 environment variable with a fallback value
func getInt64Env(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix
}
