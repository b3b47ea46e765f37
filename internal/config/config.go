package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	// ConnectAttempts bounds the startup ping retries while the database comes up.
	ConnectAttempts int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// JWTConfig holds the settings used to verify caller bearer tokens.
// Tokens are issued elsewhere; this service only validates them.
type JWTConfig struct {
	Secret string
	Issuer string
}

// RedisConfig holds connection settings for the notification outbox.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NotifyConfig controls how share notifications are delivered.
type NotifyConfig struct {
	// Backend is "log" (default) or "redis".
	Backend           string
	OutboxKey         string
	MaxAttempts       int
	InitialIntervalMs int
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level      string
	Production bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	// BaseURL is the externally advertised client URL that share links are built on.
	BaseURL        string
	Store          string
	MaxUploadBytes int
	PresignTTLSec  int
	Database       DatabaseConfig
	MinIO          MinIOConfig
	JWT            JWTConfig
	Redis          RedisConfig
	Notify         NotifyConfig
	Log            LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"), // default only for non-sensitive value
		BaseURL:        getEnv("CLIENT_URL", "http://localhost:5173"),
		Store:          getEnv("APP_STORE", "postgres"),
		MaxUploadBytes: getEnvInt("APP_MAX_UPLOAD_BYTES", 20<<20),
		PresignTTLSec:  getEnvInt("APP_PRESIGN_TTL_SEC", 900),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnectAttempts:    getEnvInt("DB_CONNECT_ATTEMPTS", 5),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Issuer: getEnv("JWT_ISSUER", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Notify: NotifyConfig{
			Backend:           getEnv("NOTIFY_BACKEND", "log"),
			OutboxKey:         getEnv("NOTIFY_OUTBOX_KEY", "docshare:outbox:share"),
			MaxAttempts:       getEnvInt("NOTIFY_MAX_ATTEMPTS", 3),
			InitialIntervalMs: getEnvInt("NOTIFY_INITIAL_INTERVAL_MS", 200),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Production: getEnvBool("LOG_PRODUCTION", true),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
