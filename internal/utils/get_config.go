package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

type Config struct {
	AppEnv     string `yaml:"APP_ENV" envconfig:"APP_ENV"`
	AppURL     string `yaml:"APP_URL" envconfig:"APP_URL"`
	ServerPort string `yaml:"SERVER_PORT" envconfig:"SERVER_PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER" envconfig:"DB_USER"`
	DBName     string `yaml:"DB_NAME" envconfig:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD" envconfig:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT" envconfig:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST" envconfig:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE" envconfig:"DB_SSLMODE"`
	DBTimeZone string `yaml:"DB_TIMEZONE" envconfig:"DB_TIMEZONE"`

	// JWT
	JWTSecret     string `yaml:"JWT_SECRET" envconfig:"JWT_SECRET"`
	JWTTTLMinutes int    `yaml:"JWT_TTL_MINUTES" envconfig:"JWT_TTL_MINUTES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST" envconfig:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT" envconfig:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME" envconfig:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL" envconfig:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD" envconfig:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET" envconfig:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION" envconfig:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY" envconfig:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY" envconfig:"AWS_SECRET_KEY"`

	// HTTP
	LogLevel         string `yaml:"LOG_LEVEL" envconfig:"LOG_LEVEL"`
	LogDir           string `yaml:"LOG_DIR" envconfig:"LOG_DIR"`
	RateLimitMax     int    `yaml:"RATE_LIMIT_MAX" envconfig:"RATE_LIMIT_MAX"`
	CORSAllowOrigins string `yaml:"CORS_ALLOW_ORIGINS" envconfig:"CORS_ALLOW_ORIGINS"`
}

// LoadConfig reads the YAML file at path (optional), then lets environment
// variables, including any from a local .env file, override it.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AppEnv == "" {
		c.AppEnv = "development"
	}
	if c.AppURL == "" {
		c.AppURL = "http://localhost:8080"
	}
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.DBSSLMode == "" {
		c.DBSSLMode = "disable"
	}
	if c.DBTimeZone == "" {
		c.DBTimeZone = "Asia/Dhaka"
	}
	if c.JWTTTLMinutes <= 0 {
		c.JWTTTLMinutes = 120
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogDir == "" {
		c.LogDir = "./logs"
	}
	if c.RateLimitMax <= 0 {
		c.RateLimitMax = 10
	}
	if c.CORSAllowOrigins == "" {
		c.CORSAllowOrigins = "*"
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.DBHost == "" || c.DBName == "" {
		return errors.New("DB_HOST and DB_NAME are required")
	}
	return nil
}
