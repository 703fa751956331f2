package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/postwall/social-api/docs"
	"github.com/postwall/social-api/internal/api/handler"
	"github.com/postwall/social-api/internal/api/middleware"
	"github.com/postwall/social-api/internal/core/ports"
	"github.com/postwall/social-api/internal/core/service"
)

// Dependencies are the adapters the router wires into the services.
type Dependencies struct {
	Users  ports.UserRepository
	Posts  ports.PostRepository
	Tokens *service.TokenService
	Hasher ports.PasswordHasher

	// Idempotency is optional; without it Idempotency-Key headers are ignored.
	Idempotency ports.IdempotencyStore
	// Activity is optional; without it activities are discarded.
	Activity ports.ActivityPublisher
	// Readiness lists the dependencies checked by GET /health/ready.
	Readiness map[string]handler.PingFunc

	Logger zerolog.Logger
}

// httpMetrics registers the request collectors with the default registry
// once; every router built in the process shares them.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("social")
})

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(httpMetrics())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Users, deps.Tokens, deps.Hasher, deps.Logger.With().Str("component", "auth_service").Logger())
	userService := service.NewUserService(deps.Users, deps.Posts, deps.Activity, deps.Logger.With().Str("component", "user_service").Logger())
	postService := service.NewPostService(deps.Posts, deps.Users, deps.Idempotency, deps.Activity, deps.Logger.With().Str("component", "post_service").Logger())

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- User routes ---
	// /me is a static segment and takes precedence over /:id.
	users := e.Group("/api/users")
	users.GET("/me", userHandler.Me, authMiddleware)
	users.GET("/:id", userHandler.Profile)
	users.PUT("/:id", userHandler.Update, authMiddleware, middleware.RequireSelf("id"))

	// --- Post routes (all authenticated) ---
	posts := e.Group("/api/posts", authMiddleware)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)
	posts.POST("/:id/like", postHandler.Like)
	posts.POST("/:id/comment", postHandler.Comment)
	posts.PUT("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request.
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
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
