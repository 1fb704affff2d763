package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Config holds all runtime settings of the server
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Auth     AuthConfig
	Sheets   SheetsConfig
	Redis    RedisConfig
	LogLevel string
}

type ServerConfig struct {
	Port           string
	PublicBaseURL  string // prefix of the image links written to the spreadsheet
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type StoreConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	PostgresURL   string
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetName string
	SpreadsheetID   string
	Timeout         time.Duration
}

type RedisConfig struct {
	URL                    string
	LoginAttemptsPerMinute int
}

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:8041",
	"http://18.188.184.213:8040",
	"http://18.188.184.213:8041",
	"https://staging.webmobrildemo.com",
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8000"),
			PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8000"), "/"),
			AllowedOrigins: getList("ALLOWED_ORIGINS", defaultAllowedOrigins),
			ReadTimeout:    getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			Driver:        strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
			MongoURI:      os.Getenv("MONGO_URI"),
			MongoDatabase: os.Getenv("DB_NAME"),
			PostgresURL:   os.Getenv("DATABASE_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
			AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", "service_account.json"),
			SpreadsheetName: getEnv("SHEET_NAME", "Loan-Lead-Sheet"),
			SpreadsheetID:   os.Getenv("SHEET_ID"),
			Timeout:         getDuration("SHEETS_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:                    os.Getenv("REDIS_URL"),
			LoginAttemptsPerMinute: getInt("LOGIN_ATTEMPTS_PER_MINUTE", 5),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY not set in environment")
	}
	switch c.Store.Driver {
	case StoreMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return errors.New("MONGO_URI and DB_NAME must be set for the mongo store")
		}
	case StorePostgres:
		if c.Store.PostgresURL == "" {
			return errors.New("DATABASE_URL must be set for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.Store.Driver, StoreMongo, StorePostgres)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
