package database

import (
	"context"
	"errors"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity/repository"
	"github.com/fitlog/fitlog/backend/go-services/internal/activity/service"
	"github.com/fitlog/fitlog/backend/go-services/internal/config"
	"github.com/fitlog/fitlog/backend/go-services/pkg/logger"
)

var errNoConnectionString = errors.New("MONGODB_URI is not set")

// Gateway owns the process-wide document store client. It is built once at
// startup and shared by all requests.
type Gateway struct {
	Store   service.Store
	Backend string
	closeFn func(context.Context) error
}

// Close releases the underlying client, if any.
func (g *Gateway) Close(ctx context.Context) error {
	if g.closeFn == nil {
		return nil
	}
	return g.closeFn(ctx)
}

// Configured reports whether a real store is behind the gateway.
func (g *Gateway) Configured() bool {
	_, ok := g.Store.(repository.Unconfigured)
	return !ok
}

// Open builds the store selected by cfg.Store.Backend. Connection problems do
// not fail startup: the gateway falls back to repository.Unconfigured so every
// storage call reports the configuration error instead.
func Open(ctx context.Context, cfg *config.Config) *Gateway {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory activity store; data is lost on restart")
		return &Gateway{Store: repository.NewMemoryRepo(), Backend: config.BackendMemory}
	case config.BackendRedis:
		return openRedis(ctx, cfg)
	default:
		return openMongo(ctx, cfg)
	}
}

func unconfigured(backend string, cause error) *Gateway {
	logger.Errorf("%s activity store unavailable: %v", backend, cause)
	return &Gateway{Store: repository.Unconfigured{Cause: cause}, Backend: backend}
}

func openMongo(ctx context.Context, cfg *config.Config) *Gateway {
	mc := cfg.MongoDB
	if mc.URI == "" {
		return unconfigured(config.BackendMongo, errNoConnectionString)
	}
	client, err := ConnectMongoWithRetry(ctx, mc.URI, mc.Timeout, mc.ConnectAttempts)
	if err != nil {
		return unconfigured(config.BackendMongo, err)
	}
	repo := repository.NewMongoRepo(client.Database(mc.Database).Collection(mc.Collection))
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warnf("could not create activity indexes: %v", err)
	}
	logger.Infof("using MongoDB activity store %s.%s", mc.Database, mc.Collection)
	return &Gateway{Store: repo, Backend: config.BackendMongo, closeFn: client.Disconnect}
}

func openRedis(ctx context.Context, cfg *config.Config) *Gateway {
	if cfg.Redis.Host == "" {
		return unconfigured(config.BackendRedis, errors.New("REDIS_HOST is not set"))
	}
	client, err := ConnectRedis(ctx, cfg.Redis, cfg.MongoDB.Timeout)
	if err != nil {
		return unconfigured(config.BackendRedis, err)
	}
	logger.Infof("using Redis activity store at %s", cfg.Redis.RedisAddr())
	return &Gateway{
		Store:   repository.NewRedisRepo(client, cfg.Redis.KeyPrefix),
		Backend: config.BackendRedis,
		closeFn: func(context.Context) error { return client.Close() },
	}
}
