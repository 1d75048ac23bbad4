package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	GigaChat GigaChatConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Server   ServerConfig
	PDFText  PDFTextConfig
}

// GigaChatConfig holds inference endpoint configuration.
type GigaChatConfig struct {
	AuthURL     string
	BaseURL     string
	APIKey      string // base64 client credentials for the token exchange
	Model       string
	Scope       string
	Timeout     time.Duration
	AuthTimeout time.Duration
	Insecure    bool // skip TLS verification (the hosted endpoint ships a non-standard chain)
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
}

// CatalogConfig holds the file-backed catalog configuration.
type CatalogConfig struct {
	Dir string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
}

// PDFTextConfig holds PDF text-layer extraction configuration.
type PDFTextConfig struct {
	Pdftotext string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		GigaChat: GigaChatConfig{
			AuthURL:     getEnv("GIGACHAT_AUTH_URL", "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"),
			BaseURL:     getEnv("GIGACHAT_API_URL", "https://gigachat.devices.sberbank.ru/api/v1"),
			APIKey:      getEnv("GIGACHAT_API_KEY", ""),
			Model:       getEnv("GIGACHAT_MODEL", "GigaChat-2-Max"),
			Scope:       getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Timeout:     getEnvAsDuration("GIGACHAT_TIMEOUT", 60*time.Second),
			AuthTimeout: getEnvAsDuration("GIGACHAT_AUTH_TIMEOUT", 30*time.Second),
			Insecure:    getEnvAsBool("GIGACHAT_INSECURE", true),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Catalog: CatalogConfig{
			Dir: getEnv("CATALOG_DIR", "."),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		},
		PDFText: PDFTextConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.GigaChat.APIKey == "" {
		return WrapError(ErrInvalidInput, "GIGACHAT_API_KEY is required")
	}
	if c.Catalog.Dir == "" {
		return WrapError(ErrInvalidInput, "CATALOG_DIR is required")
	}
	return nil
}
