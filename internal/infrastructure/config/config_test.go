package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"GYMHUB_APP_NAME":          os.Getenv("GYMHUB_APP_NAME"),
		"GYMHUB_APP_ENV":           os.Getenv("GYMHUB_APP_ENV"),
		"GYMHUB_APP_PORT":          os.Getenv("GYMHUB_APP_PORT"),
		"GYMHUB_DATABASE_HOST":     os.Getenv("GYMHUB_DATABASE_HOST"),
		"GYMHUB_DATABASE_PORT":     os.Getenv("GYMHUB_DATABASE_PORT"),
		"GYMHUB_DATABASE_USER":     os.Getenv("GYMHUB_DATABASE_USER"),
		"GYMHUB_DATABASE_PASSWORD": os.Getenv("GYMHUB_DATABASE_PASSWORD"),
		"GYMHUB_DATABASE_DBNAME":   os.Getenv("GYMHUB_DATABASE_DBNAME"),
		"GYMHUB_DATABASE_SSLMODE":  os.Getenv("GYMHUB_DATABASE_SSLMODE"),
		"GYMHUB_JWT_SECRET":        os.Getenv("GYMHUB_JWT_SECRET"),
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

		assert.Equal(t, "gymhub-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "gymhub", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "gymhub-reports", cfg.Storage.Bucket)
	})

	t.Run("loads values from environment variables with GYMHUB prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("GYMHUB_APP_NAME", "test-app")
		os.Setenv("GYMHUB_APP_PORT", "9000")
		os.Setenv("GYMHUB_DATABASE_HOST", "testdb.local")
		os.Setenv("GYMHUB_DATABASE_PORT", "5433")
		os.Setenv("GYMHUB_DATABASE_PASSWORD", "testpass")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
	})

	t.Run("production requires jwt secret and db password", func(t *testing.T) {
		clearEnv()
		os.Setenv("GYMHUB_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		clearEnv()
		os.Setenv("GYMHUB_APP_ENV", "production")
		os.Setenv("GYMHUB_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("GYMHUB_DATABASE_PASSWORD", "secret")
		os.Setenv("GYMHUB_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "gym",
		Password: "p@ss/word",
		DBName:   "gymhub",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", r.Addr())
}
