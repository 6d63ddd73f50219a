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
}

// AuthConfig holds password hashing and token signing settings.
type AuthConfig struct {
	JWTSecret          string
	AccessTokenTTLMin  int
	RefreshTokenTTLMin int
	BcryptCost         int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LogConfig controls the application logger and its sinks.
// FilePath enables the file sink when non-empty; the ObjectSink settings
// enable shipping log batches to object storage.
type LogConfig struct {
	Level                  string
	FilePath               string
	ObjectSinkEnabled      bool
	ObjectKeyPrefix        string
	ObjectFlushCount       int
	ObjectFlushIntervalSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	Auth     AuthConfig
	MinIO    MinIOConfig
	Log      LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
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
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			AccessTokenTTLMin:  getEnvInt("JWT_ACCESS_TTL_MIN", 15),
			RefreshTokenTTLMin: getEnvInt("JWT_REFRESH_TTL_MIN", 60*24*7),
			BcryptCost:         getEnvInt("BCRYPT_COST", 0), // 0 falls back to bcrypt.DefaultCost
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Log: LogConfig{
			Level:                  getEnv("LOG_LEVEL", "info"),
			FilePath:               getEnv("LOG_FILE", ""),
			ObjectSinkEnabled:      getEnvBool("LOG_OBJECT_SINK", false),
			ObjectKeyPrefix:        getEnv("LOG_OBJECT_PREFIX", "logs"),
			ObjectFlushCount:       getEnvInt("LOG_OBJECT_FLUSH_COUNT", 100),
			ObjectFlushIntervalSec: getEnvInt("LOG_OBJECT_FLUSH_INTERVAL_SEC", 30),
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
