package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/fitlog/fitlog/backend/go-services/internal/activity/service"
	"github.com/fitlog/fitlog/backend/go-services/internal/config"
	"github.com/fitlog/fitlog/backend/go-services/internal/database"
	"github.com/fitlog/fitlog/backend/go-services/internal/server"
	"github.com/fitlog/fitlog/backend/go-services/internal/storage"
	"github.com/fitlog/fitlog/backend/go-services/pkg/logger"
	"github.com/fitlog/fitlog/backend/go-services/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	logger.Infof("config loaded: backend=%s mongo=%v redis=%v objectstore=%v",
		cfg.Store.Backend, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.ObjectStore.Endpoint != "")

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gw := database.Open(ctx, cfg)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := gw.Close(closeCtx); err != nil {
			logger.Warnf("closing %s store: %v", gw.Backend, err)
		}
	}()

	opts := []service.Option{}
	if cfg.ObjectStore.Endpoint != "" {
		objects, err := storage.NewMinIOStorage(ctx, cfg.ObjectStore)
		if err != nil {
			logger.Warnf("object storage disabled: %v", err)
		} else {
			opts = append(opts, service.WithObjectStore(objects, cfg.ObjectStore.LinkTTL))
			logger.Infof("exports go to bucket %s at %s", cfg.ObjectStore.Bucket, cfg.ObjectStore.Endpoint)
		}
	}
	svc := service.New(gw.Store, opts...)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := server.NewRouter(svc, server.Options{
		Gatherer:  prometheus.DefaultGatherer,
		AccessLog: true,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("activity service listening on %s (store=%s configured=%v)", addr, gw.Backend, gw.Configured())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
