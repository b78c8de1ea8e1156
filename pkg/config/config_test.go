package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/pkg/config"
)

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("MAX_OPEN_ADVERTISEMENTS", "3")
	t.Setenv("DB_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverMemory, cfg.App.StorageDriver)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 3, cfg.Limits.MaxOpenAdvertisements)
	assert.Equal(t, 20, cfg.Limits.MaxStudentsPerCourse)
	assert.False(t, cfg.DB.Migrate)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "logistica", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/logistica?sslmode=disable", c.ConnectionString())
}
