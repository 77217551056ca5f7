package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "swiftsupply-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "swiftsupply", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpiration)
		assert.Equal(t, "SWF_ACC", cfg.Cookie.AccessName)
		assert.Equal(t, "SWF_REF", cfg.Cookie.RefreshName)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Equal(t, "/images", cfg.Storage.PublicPath)
		assert.Equal(t, "log", cfg.Mail.Driver)
		assert.Equal(t, 6, cfg.OTP.Length)
		assert.Equal(t, 10*time.Minute, cfg.OTP.TTL)
		assert.Equal(t, 30*time.Minute, cfg.OTP.ResetTokenTTL)
		assert.Equal(t, 30*time.Second, cfg.OTP.ResendInterval)
		assert.Equal(t, 3, cfg.OTP.ResendBurst)
	})

	t.Run("loads values from environment variables with SWF prefix", func(t *testing.T) {
		t.Setenv("SWF_APP_NAME", "test-app")
		t.Setenv("SWF_APP_PORT", "9000")
		t.Setenv("SWF_DATABASE_DRIVER", "sqlite")
		t.Setenv("SWF_DATABASE_SQLITE_PATH", ":memory:")
		t.Setenv("SWF_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("SWF_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("SWF_OTP_TTL", "5m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, ":memory:", cfg.Database.DSN())
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		t.Setenv("SWF_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("rejects s3 storage without bucket", func(t *testing.T) {
		t.Setenv("SWF_STORAGE_DRIVER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.s3.bucket")
	})

	t.Run("rejects smtp mail without host", func(t *testing.T) {
		t.Setenv("SWF_MAIL_DRIVER", "smtp")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mail.host")
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		t.Setenv("SWF_DATABASE_MAX_OPEN_CONNS", "5")
		t.Setenv("SWF_DATABASE_MAX_IDLE_CONNS", "10")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setProduction := func(t *testing.T) {
		t.Setenv("SWF_APP_ENV", "production")
		t.Setenv("SWF_JWT_SECRET", "a-very-long-secret-key-that-is-at-least-32-chars")
		t.Setenv("SWF_DATABASE_PASSWORD", "s3cret-pass")
		t.Setenv("SWF_COOKIE_SECURE", "true")
	}

	t.Run("accepts a complete production config", func(t *testing.T) {
		setProduction(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})

	t.Run("requires jwt secret", func(t *testing.T) {
		setProduction(t)
		t.Setenv("SWF_JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required")
	})

	t.Run("requires a long jwt secret", func(t *testing.T) {
		setProduction(t)
		t.Setenv("SWF_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("rejects the default database password", func(t *testing.T) {
		setProduction(t)
		t.Setenv("SWF_DATABASE_PASSWORD", "postgres")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("requires secure cookies", func(t *testing.T) {
		setProduction(t)
		t.Setenv("SWF_COOKIE_SECURE", "false")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cookie.secure")
	})

	t.Run("rejects wildcard CORS", func(t *testing.T) {
		setProduction(t)
		t.Setenv("SWF_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("rejects sqlite", func(t *testing.T) {
		setProduction(t)
		t.Setenv("SWF_DATABASE_DRIVER", "sqlite")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("escapes postgres credentials", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   "postgres",
			Host:     "db.local",
			Port:     5432,
			User:     "app",
			Password: "p@ss:word/",
			DBName:   "swiftsupply",
			SSLMode:  "require",
		}
		dsn := cfg.DSN()
		assert.Contains(t, dsn, "p%40ss")
		assert.Contains(t, dsn, "@db.local:5432/swiftsupply")
		assert.Contains(t, dsn, "sslmode=require")
	})

	t.Run("returns the sqlite path", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "sqlite", SQLitePath: "dev.db"}
		assert.Equal(t, "dev.db", cfg.DSN())
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
