package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planvista/visionboard-api/internal/api/handler"
	"github.com/planvista/visionboard-api/internal/api/middleware"
	"github.com/planvista/visionboard-api/internal/core/service"
	mongodb "github.com/planvista/visionboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/planvista/visionboard-api/internal/infrastructure/db/redis"
	"github.com/planvista/visionboard-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("visionboard"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	boards := mongodb.NewBoardRepository(db)
	vendors := mongodb.NewVendorRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	sessions := service.NewSessionService(sessionStore, cfg.SessionSecret, cfg.SessionTTL, cfg.SessionTouchAfter, log)
	authService := service.NewAuthService(users, log)
	boardService := service.NewBoardService(users, boards, vendors, log)

	authHandler := handler.NewAuthHandler(authService, sessions)
	boardHandler := handler.NewBoardHandler(boardService)
	vendorHandler := handler.NewVendorHandler(boardService)

	requireAuth := middleware.RequireAuthenticated(sessions)
	requireNoAuth := middleware.RequireUnauthenticated(sessions)
	requireAPIAuth := middleware.RequireAPIAuthenticated(sessions)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login, requireNoAuth)
	auth.Any("/logout", authHandler.Logout, requireAuth)
	auth.POST("/register", authHandler.Register, requireNoAuth)
	auth.POST("/password", authHandler.ChangePassword, requireAPIAuth)

	// --- Vision board routes ---
	vb := e.Group("/api/visionboard", requireAPIAuth)
	vb.GET("/boards", boardHandler.List)
	vb.POST("/boards", boardHandler.Create)
	vb.GET("/boards/:id", boardHandler.Get)
	vb.PUT("/boards/:id", boardHandler.Update)
	vb.DELETE("/boards/:id", boardHandler.Delete)
	vb.GET("/boards/:id/vendors/:vendorId", vendorHandler.Get)
	vb.POST("/boards/:id/vendors", vendorHandler.Create)
	vb.DELETE("/boards/:id/vendors/:vendorId", vendorHandler.Delete)

	// Reject unmatched API routes with a plain 404 instead of falling through
	// to a page response.
	e.Any("/api/*", func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Page routes (development only; production fronts a static server) ---
	if cfg.Env == "development" {
		pages := handler.NewPageHandler(cfg.BuildDir)
		e.GET("/login", pages.Login, requireNoAuth)
		e.GET("/register", pages.Login, requireNoAuth)
		e.GET("/*", pages.App, requireAuth)
	}

	return e
}
