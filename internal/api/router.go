package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodcort/foodcort/internal/api/handler"
	"github.com/foodcort/foodcort/internal/api/middleware"
	"github.com/foodcort/foodcort/internal/core/ports"
)

// RouterConfig carries the wired services and the infrastructure handles the
// probes need. Mongo and Redis may be nil (tests run without them); the
// readiness probe is only registered when both are present.
type RouterConfig struct {
	Accounts   ports.AccountService
	Recovery   ports.RecoveryService
	JWTSecret  string
	SessionTTL time.Duration
	Log        zerolog.Logger

	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("foodcort"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(cfg.Accounts, cfg.Recovery, cfg.SessionTTL)
	userHandler := handler.NewUserHandler(cfg.Accounts)
	catalogHandler := handler.NewCatalogHandler()
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/signup", authHandler.SignUp)
	e.POST("/api/auth/signin", authHandler.SignIn)
	e.POST("/api/auth/google-auth", authHandler.GoogleAuth)
	e.POST("/api/auth/signout", authHandler.SignOut)
	e.POST("/api/auth/send-otp", authHandler.SendOTP)
	e.POST("/api/auth/verify-otp", authHandler.VerifyOTP)
	e.POST("/api/auth/reset-password", authHandler.ResetPassword)

	// --- Session + catalog ---
	e.GET("/api/user/current", userHandler.Current, authMiddleware)
	e.GET("/api/items", catalogHandler.Items)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	if cfg.Mongo != nil && cfg.Redis != nil {
		readiness := handler.NewReadinessHandler(cfg.Mongo, cfg.Redis)
		e.GET("/health/ready", readiness.Readiness) // readiness – are dependencies up?
	}

	return e
}
