package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-logmanager/internal/container"
	handlers "github.com/oksasatya/go-logmanager/internal/interface/http"
	"github.com/oksasatya/go-logmanager/internal/interface/middleware"
	"github.com/oksasatya/go-logmanager/internal/router/modules"
)

// InitModules builds the services from c and registers every module.
// It should be called once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) container.Services {
	svc := c.BuildServices()

	// Only writes are limited; reads and private addresses pass.
	limiter := middleware.RateLimit(
		c.Redis,
		c.Config.RateLimitPerMinute,
		time.Minute,
		middleware.KeyByIPAndMethod(),
		middleware.AnyOf(middleware.AllowReads(), middleware.AllowPrivateIP()),
	)
	exportLimiter := middleware.RateLimit(c.Redis, 5, time.Minute, middleware.KeyByIP(), nil)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks(c))))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, c.Logger), limiter))
	r.Add(modules.NewLogModule(handlers.NewLogHandler(svc.Logs, c.Logger), limiter, exportLimiter))
	return svc
}

func healthChecks(c *container.Container) map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if c.PGPool != nil {
		checks["postgres"] = c.PGPool.Ping
	}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	}
	return checks
}

// NewEngine returns a gin engine with the /api routes registered and the
// given global middleware installed. Client IPs come from forwarding headers
// only when the peer is one of the configured trusted proxies.
func NewEngine(c *container.Container, global ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	if err := middleware.TrustClientIPFrom(engine, c.Config.TrustedProxyList(), c.Config.TrustedPlatform); err != nil {
		c.Logger.WithError(err).Warn("invalid trusted proxy settings; forwarding headers are ignored")
		_ = middleware.TrustClientIPFrom(engine, nil, "")
	}
	engine.Use(global...)
	reg := NewRegistry(engine)
	InitModules(reg, c)
	reg.RegisterAll()
	return engine
}
