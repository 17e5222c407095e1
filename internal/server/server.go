package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/fitlog/fitlog/backend/go-services/handlers"
	"github.com/fitlog/fitlog/backend/go-services/internal/activity/handler"
	"github.com/fitlog/fitlog/backend/go-services/internal/activity/service"
	"github.com/fitlog/fitlog/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var startTime = time.Now()

// Options tunes NewRouter.
type Options struct {
	// Gatherer backs GET /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// AccessLog enables gin's request logger.
	AccessLog bool
	// ReadyTimeout bounds the store ping behind GET /ready.
	ReadyTimeout time.Duration
}

// NewRouter wires middleware, operational endpoints and the activity API.
func NewRouter(svc *service.Service, opts Options) *gin.Engine {
	r := gin.New()
	if opts.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery(), middleware.CORS(), middleware.RequestMetrics())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	readyTimeout := opts.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = 2 * time.Second
	}
	// ready only when the document store answers
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		uptime := time.Since(startTime).Round(time.Second).String()
		if err := svc.Ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": gin.H{"store": false}, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": gin.H{"store": true}, "uptime": uptime})
	})

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	handlers.RegisterSwagger(r)
	handler.RegisterActivityRoutes(r, svc)
	return r
}
