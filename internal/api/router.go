package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshcodes/identity-gateway/internal/api/handler"
	"github.com/freshcodes/identity-gateway/internal/api/middleware"
	"github.com/freshcodes/identity-gateway/internal/core/domain"
	"github.com/freshcodes/identity-gateway/internal/core/ports"
	"github.com/freshcodes/identity-gateway/internal/core/service"
	"github.com/freshcodes/identity-gateway/internal/infrastructure/config"
	mongouser "github.com/freshcodes/identity-gateway/internal/infrastructure/db/mongo"
	redisuser "github.com/freshcodes/identity-gateway/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	var repo ports.UserRepository = mongouser.NewUserRepository(db)
	if cfg.Identity.CacheEnabled {
		repo = redisuser.NewUserCache(rdb, repo, cfg.Identity.CacheTTL, log)
	}
	verifier := service.NewVerifier(repo)
	userHandler := handler.NewUserHandler(verifier)

	identity := middleware.Identity(verifier, middleware.Options{
		HeaderName: cfg.Identity.HeaderName,
		AutoCreate: cfg.Identity.AutoCreate,
	})

	// --- User routes ---
	users := e.Group("/users", identity)
	users.GET("/me", userHandler.Me)
	users.POST("", userHandler.Create, middleware.RequireRoles(domain.RoleAdmin))
	users.GET("/:email", userHandler.Get, middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator))
	users.PATCH("/:email/role", userHandler.UpdateRole, middleware.RequireRoles(domain.RoleAdmin))

	// --- Health probes (no identity required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
