package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	Env            string
	DB             DBConfig
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	AMQPURL        string
	UploadDir      string
	AdminAPIKey    string
	SwaggerHost    string
	RequestTimeout time.Duration
}

// DBConfig describes the relational store connection.
type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	LogLevel        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Load builds Config from environment with sensible defaults.
// Values from a local .env file are applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			DSN:             os.Getenv("DATABASE_DSN"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            os.Getenv("DB_PORT"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            getEnv("DB_NAME", "carehub"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			LogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		AMQPURL:        os.Getenv("AMQP_URL"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		AdminAPIKey:    os.Getenv("ADMIN_API_KEY"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 5*time.Second),
	}
}

// GetDSN returns DATABASE_DSN when set, otherwise a DSN assembled for the configured driver.
func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}

	switch c.Driver {
	case "mysql":
		port := c.Port
		if port == "" {
			port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, port, c.Name)
	case "sqlite":
		return c.Name + ".db?_foreign_keys=on"
	default:
		port := c.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, port, c.User, c.Password, c.Name, c.SSLMode)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
