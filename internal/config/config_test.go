package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MONGODB_TIMEOUT", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, "FitnessDB", cfg.MongoDB.Database)
	require.Equal(t, "Activities", cfg.MongoDB.Collection)
	require.Equal(t, 3*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, BackendMongo, cfg.Store.Backend)
	require.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
	require.True(t, cfg.ObjectStore.UseSSL)
	require.Equal(t, 15*time.Minute, cfg.ObjectStore.LinkTTL)
	require.Equal(t, "7071", cfg.Server.Port)
}

func TestLoadConfig_MissingConnectionStringIsNotFatal(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Empty(t, cfg.MongoDB.URI)
}

func TestLoadConfig_Backend(t *testing.T) {
	t.Setenv("STORE_BACKEND", " Redis ")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendRedis, cfg.Store.Backend)

	t.Setenv("STORE_BACKEND", "cosmos")
	_, err = LoadConfig()
	var be *InvalidBackendError
	require.True(t, errors.As(err, &be))
	require.Equal(t, "cosmos", be.Backend)
}
