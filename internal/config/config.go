package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Identity IdentityConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	// DictionaryTTL bounds staleness of cached dictionary tables.
	DictionaryTTL time.Duration
}

type JWTConfig struct {
	// Secret is shared with the hosted auth provider; access tokens are
	// verified locally with it (HS256).
	Secret string
}

type IdentityConfig struct {
	// BaseURL of the hosted auth provider, e.g. https://xyz.example.co
	BaseURL string
	// AnonKey authorizes end-user flows (login).
	AnonKey string
	// ServiceKey authorizes admin flows (user creation).
	ServiceKey string
	Timeout    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_DICTIONARY_TTL_MIN", 10)
	viper.SetDefault("IDENTITY_TIMEOUT_SEC", 10)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:          viper.GetString("REDIS_HOST"),
			Port:          viper.GetInt("REDIS_PORT"),
			Password:      viper.GetString("REDIS_PASSWORD"),
			DB:            viper.GetInt("REDIS_DB"),
			DictionaryTTL: time.Duration(viper.GetInt("REDIS_DICTIONARY_TTL_MIN")) * time.Minute,
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Identity: IdentityConfig{
			BaseURL:    viper.GetString("IDENTITY_BASE_URL"),
			AnonKey:    viper.GetString("IDENTITY_ANON_KEY"),
			ServiceKey: viper.GetString("IDENTITY_SERVICE_KEY"),
			Timeout:    time.Duration(viper.GetInt("IDENTITY_TIMEOUT_SEC")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(viper.GetString("ALLOWED_ORIGINS")),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.Identity.BaseURL == "" {
		return fmt.Errorf("identity provider base URL is required")
	}
	if c.Identity.AnonKey == "" {
		return fmt.Errorf("identity provider anon key is required")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func splitOrigins(raw string) []string {
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
