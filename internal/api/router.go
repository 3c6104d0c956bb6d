package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bloglist/blog-api/docs"
	"github.com/bloglist/blog-api/internal/api/handler"
	"github.com/bloglist/blog-api/internal/api/middleware"
	"github.com/bloglist/blog-api/internal/core/ports"
	"github.com/bloglist/blog-api/internal/core/service"
)

// Dependencies are the store handles and settings the router wires into
// the services.
type Dependencies struct {
	Users ports.UserRepository
	Posts ports.PostRepository
	// Idempotency is optional; nil disables Idempotency-Key replay.
	Idempotency ports.IdempotencyStore

	Secret   string
	TokenTTL time.Duration

	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "bloglist",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.TokenExtractor())

	// --- Dependencies ---
	tokenService := service.NewTokenService(deps.Secret, deps.TokenTTL)
	authService := service.NewAuthService(deps.Users, tokenService, deps.Logger)
	userService := service.NewUserService(deps.Users, deps.Posts, deps.Logger)
	postService := service.NewPostService(deps.Posts, deps.Users, deps.Idempotency, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	blogHandler := handler.NewBlogHandler(postService)
	healthHandler := handler.NewHealthHandler(deps.Checks)

	requireUser := middleware.UserExtractor(authService)

	// --- Blog routes ---
	blogs := e.Group("/api/blogs")
	blogs.GET("", blogHandler.List)
	blogs.GET("/:id", blogHandler.Get)
	blogs.POST("", blogHandler.Create, requireUser)
	blogs.PUT("/:id", blogHandler.UpdateLikes, requireUser)
	blogs.DELETE("/:id", blogHandler.Delete, requireUser)

	// --- User / auth routes ---
	e.GET("/api/users", userHandler.List)
	e.POST("/api/users", userHandler.Register)
	e.POST("/api/login", authHandler.Login)

	// --- Operations ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one access-log line per request through zerolog.
// Bodies are never logged.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
