package postgres

import (
	"testing"
	"time"

	"laundry-hub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "laundry",
		Password:        "secret",
		DBName:          "laundry_hub",
		SSLMode:         "disable",
		MaxConns:        20,
		MinConns:        5,
		ConnMaxLifetime: 30 * time.Minute,
		LockTimeout:     5 * time.Second,
		AppName:         "laundry-hub",
	}
}

func TestPoolConfig(t *testing.T) {
	poolCfg, err := PoolConfig(testDatabaseConfig())
	require.NoError(t, err)

	assert.Equal(t, int32(20), poolCfg.MaxConns)
	assert.Equal(t, int32(5), poolCfg.MinConns)
	assert.Equal(t, 30*time.Minute, poolCfg.MaxConnLifetime)
	assert.Equal(t, "localhost", poolCfg.ConnConfig.Host)
	assert.Equal(t, "laundry_hub", poolCfg.ConnConfig.Database)
	assert.Equal(t, "5000", poolCfg.ConnConfig.RuntimeParams["lock_timeout"])
	assert.Equal(t, "laundry-hub", poolCfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_ClampsMinConns(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.MaxConns = 4
	cfg.MinConns = 10

	poolCfg, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(4), poolCfg.MinConns)
}

func TestPoolConfig_ZeroValuesKeepDriverDefaults(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.MaxConns = 0
	cfg.MinConns = 0
	cfg.LockTimeout = 0

	poolCfg, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Positive(t, poolCfg.MaxConns)
	assert.NotContains(t, poolCfg.ConnConfig.RuntimeParams, "lock_timeout")
}

func TestPoolConfig_InvalidDSN(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.SSLMode = "sometimes"

	_, err := PoolConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing database config")
}
