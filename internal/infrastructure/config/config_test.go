package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"INMOGEST_APP_NAME":                os.Getenv("INMOGEST_APP_NAME"),
		"INMOGEST_APP_ENV":                 os.Getenv("INMOGEST_APP_ENV"),
		"INMOGEST_APP_PORT":                os.Getenv("INMOGEST_APP_PORT"),
		"INMOGEST_DATABASE_HOST":           os.Getenv("INMOGEST_DATABASE_HOST"),
		"INMOGEST_DATABASE_PORT":           os.Getenv("INMOGEST_DATABASE_PORT"),
		"INMOGEST_DATABASE_PASSWORD":       os.Getenv("INMOGEST_DATABASE_PASSWORD"),
		"INMOGEST_DATABASE_SSLMODE":        os.Getenv("INMOGEST_DATABASE_SSLMODE"),
		"INMOGEST_DATABASE_MAX_OPEN_CONNS": os.Getenv("INMOGEST_DATABASE_MAX_OPEN_CONNS"),
		"INMOGEST_DATABASE_MAX_IDLE_CONNS": os.Getenv("INMOGEST_DATABASE_MAX_IDLE_CONNS"),
		"INMOGEST_JWT_SECRET":              os.Getenv("INMOGEST_JWT_SECRET"),
		"INMOGEST_TELEMETRY_SAMPLING_RATIO": os.Getenv("INMOGEST_TELEMETRY_SAMPLING_RATIO"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "inmogest-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "inmogest", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "FAC", cfg.Fiscal.InvoiceNumberPrefix)
	})

	t.Run("loads values from environment variables with INMOGEST prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("INMOGEST_APP_NAME", "test-app")
		os.Setenv("INMOGEST_APP_PORT", "9000")
		os.Setenv("INMOGEST_DATABASE_HOST", "testdb.local")
		os.Setenv("INMOGEST_DATABASE_PORT", "5433")
		os.Setenv("INMOGEST_DATABASE_PASSWORD", "testpass")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("INMOGEST_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("INMOGEST_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("production requires a JWT secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("INMOGEST_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("rejects out-of-range sampling ratio", func(t *testing.T) {
		clearEnv()
		os.Setenv("INMOGEST_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "inmogest",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestFiscalConfigParsedShares(t *testing.T) {
	t.Run("empty table is allowed", func(t *testing.T) {
		f := FiscalConfig{}
		shares, err := f.ParsedShares()
		require.NoError(t, err)
		assert.Nil(t, shares)
	})

	t.Run("valid table parses", func(t *testing.T) {
		f := FiscalConfig{DefaultShares: []DefaultShareConfig{
			{OwnerID: "11111111-1111-1111-1111-111111111111", OwnerName: "Ana", Percentage: "60"},
			{OwnerID: "22222222-2222-2222-2222-222222222222", OwnerName: "Luis", Percentage: "40"},
		}}
		shares, err := f.ParsedShares()
		require.NoError(t, err)
		require.Len(t, shares, 2)
		assert.Equal(t, "Ana", shares[0].OwnerName)
		assert.True(t, shares[0].Percentage.Equal(decimal.NewFromInt(60)))
	})

	t.Run("rejects bad owner id", func(t *testing.T) {
		f := FiscalConfig{DefaultShares: []DefaultShareConfig{
			{OwnerID: "not-a-uuid", OwnerName: "Ana", Percentage: "100"},
		}}
		_, err := f.ParsedShares()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "owner_id")
	})

	t.Run("rejects table not summing to 100", func(t *testing.T) {
		f := FiscalConfig{DefaultShares: []DefaultShareConfig{
			{OwnerID: "11111111-1111-1111-1111-111111111111", OwnerName: "Ana", Percentage: "60"},
			{OwnerID: "22222222-2222-2222-2222-222222222222", OwnerName: "Luis", Percentage: "30"},
		}}
		_, err := f.ParsedShares()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sum")
	})

	t.Run("tolerates repeating-decimal thirds", func(t *testing.T) {
		f := FiscalConfig{DefaultShares: []DefaultShareConfig{
			{OwnerID: "11111111-1111-1111-1111-111111111111", OwnerName: "Ana", Percentage: "33.34"},
			{OwnerID: "22222222-2222-2222-2222-222222222222", OwnerName: "Luis", Percentage: "33.33"},
			{OwnerID: "33333333-3333-3333-3333-333333333333", OwnerName: "Marta", Percentage: "33.33"},
		}}
		shares, err := f.ParsedShares()
		require.NoError(t, err)
		assert.Len(t, shares, 3)
	})
}
