package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLog(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })
	return logs
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8088", cfg.App.Port)
	assert.Equal(t, "./data", cfg.App.DataDir)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.True(t, cfg.DB.Enabled)
	assert.Equal(t, 168*time.Hour, cfg.Redis.SessionTTL)
	assert.Equal(t, 24*time.Hour, cfg.Heartbeat.Interval)
	assert.Same(t, cfg, GetConfig())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CRON_SECRET", "s3cret")
	t.Setenv("HEARTBEAT_INTERVAL", "1h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.False(t, cfg.DB.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Redis.SessionTTL)
	assert.Equal(t, "s3cret", cfg.Heartbeat.CronSecret)
	assert.Equal(t, time.Hour, cfg.Heartbeat.Interval)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "DB_DRIVER")
	})
	t.Run("interval", func(t *testing.T) {
		t.Setenv("HEARTBEAT_INTERVAL", "0s")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "HEARTBEAT_INTERVAL")
	})
	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "a week")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	var cfg Config
	cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode = "db", "5432", "u", "p", "miximax", "disable"

	cfg.DB.Driver = "postgres"
	assert.Equal(t, "host=db user=u password=p dbname=miximax port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())

	cfg.DB.Driver = "mysql"
	cfg.DB.Port = "3306"
	assert.Equal(t, "u:p@tcp(db:3306)/miximax?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DSN())
}

func TestConnectRedisDisabled(t *testing.T) {
	var cfg Config
	client, err := ConnectRedis(context.Background(), cfg)
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestConnectOptionalDBUnreachable(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "1")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	logs := observeLog(t)

	connectOptionalDB(*cfg)

	assert.Nil(t, DB)
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage("Database unreachable, heartbeat and mirror are unavailable")
	require.Equal(t, 1, warnings.Len())
	assert.Equal(t, "127.0.0.1", warnings.All()[0].ContextMap()["host"])
}

func TestConnectOptionalDBDisabled(t *testing.T) {
	var cfg Config
	logs := observeLog(t)

	connectOptionalDB(cfg)

	assert.Nil(t, DB)
	assert.Equal(t, 1, logs.FilterMessage("Database disabled, heartbeat and mirror are unavailable").Len())
}
