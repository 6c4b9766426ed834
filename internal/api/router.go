package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/profissa/marketplace-api/internal/api/handler"
	"github.com/profissa/marketplace-api/internal/api/middleware"
	"github.com/profissa/marketplace-api/internal/core/ports"
	"github.com/profissa/marketplace-api/internal/core/service"
)

// Dependencies carries everything the router needs to assemble the service.
// Mongo and Redis may be nil in memory-store mode; the readiness probe then
// skips them and token revocation is disabled.
type Dependencies struct {
	Store     ports.RecordStore
	Denylist  service.TokenDenylist
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Services ---
	authService := service.NewAuthService(deps.Store, deps.Denylist, deps.JWTSecret, deps.TokenTTL, deps.Log)
	recordService := service.NewRecordService(deps.Store, deps.Log)
	contractService := service.NewContractService(recordService, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	recordHandler := handler.NewRecordHandler(recordService)
	contractHandler := handler.NewContractHandler(contractService)
	searchHandler := handler.NewSearchHandler()
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	// --- Health & metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Proximity search (input validation stub) ---
	e.GET("/professionals/search", searchHandler.Search)

	// --- Contract lifecycle ---
	e.PUT("/contracts/:id/status", contractHandler.ChangeStatus, requireAuth)
	e.PUT("/contracts/:id/avaliar", contractHandler.Rate, requireAuth)

	// --- Generic CRUD surface; the ownership rules gate every operation ---
	e.GET("/:collection", recordHandler.List, optionalAuth)
	e.POST("/:collection", recordHandler.Create, requireAuth)
	e.GET("/:collection/:id", recordHandler.Get, optionalAuth)
	e.PUT("/:collection/:id", recordHandler.Update, requireAuth)
	e.PATCH("/:collection/:id", recordHandler.Update, requireAuth)
	e.DELETE("/:collection/:id", recordHandler.Delete, requireAuth)

	return e
}
