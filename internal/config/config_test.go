package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "PUBLIC_BASE_URL", "ALLOWED_ORIGINS", "STORE_DRIVER", "DATABASE_URL",
		"ACCESS_TOKEN_TTL", "SHEET_NAME", "SHEET_ID", "GOOGLE_SERVICE_ACCOUNT_FILE",
		"REDIS_URL", "LOGIN_ATTEMPTS_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "meetings")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMongo, cfg.Store.Driver)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "Loan-Lead-Sheet", cfg.Sheets.SpreadsheetName)
	assert.Equal(t, "service_account.json", cfg.Sheets.CredentialsFile)
	assert.Equal(t, []string{
		"http://localhost:5173",
		"http://localhost:8041",
		"http://18.188.184.213:8040",
		"http://18.188.184.213:8041",
		"https://staging.webmobrildemo.com",
	}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5, cfg.Redis.LoginAttemptsPerMinute)
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PUBLIC_BASE_URL", "https://example.com/backend/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("ACCESS_TOKEN_TTL", "90m")
	t.Setenv("LOGIN_ATTEMPTS_PER_MINUTE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/backend", cfg.Server.PublicBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 90*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 5, cfg.Redis.LoginAttemptsPerMinute)
}

func TestLoad_MissingSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET_KEY")
}

func TestLoad_MongoRequiresURIAndDatabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_NAME", "")

	_, err := Load()
	assert.ErrorContains(t, err, "MONGO_URI and DB_NAME")
}

func TestLoad_Postgres(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_DRIVER", "Postgres")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/meetings")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
}

func TestLoad_UnknownDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown STORE_DRIVER")
}
