package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Auth.Latency)
	assert.Equal(t, 2*time.Second, cfg.Checkout.Latency)
	assert.InDelta(t, 5.00, cfg.Checkout.DeliveryFee, 1e-9)
	assert.InDelta(t, 30.00, cfg.Checkout.FreeDeliveryThreshold, 1e-9)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, DriverMemory, cfg.Catalog.Driver)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth:
  latency: 50ms
storage:
  driver: sqlite
  sqlite_path: /tmp/session.db
checkout:
  delivery_fee: 7.5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.Auth.Latency)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/session.db", cfg.Storage.SQLitePath)
	assert.InDelta(t, 7.5, cfg.Checkout.DeliveryFee, 1e-9)

	// Untouched keys keep their defaults.
	assert.Equal(t, 2*time.Second, cfg.Checkout.Latency)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: sqlite\n"), 0o644))

	t.Setenv("SMARTDAIRY_STORAGE_DRIVER", "redis")
	t.Setenv("SMARTDAIRY_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("SMARTDAIRY_AUTH_LATENCY", "0s")
	t.Setenv("SMARTDAIRY_FREE_DELIVERY_THRESHOLD", "45")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis.internal:6380", cfg.Storage.RedisAddr)
	assert.Zero(t, cfg.Auth.Latency)
	assert.InDelta(t, 45.0, cfg.Checkout.FreeDeliveryThreshold, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{not yaml"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("SMARTDAIRY_STORAGE_DRIVER", "mongodb")
	_, err = Load("")
	assert.Error(t, err)
}
