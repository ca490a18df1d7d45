// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	_ "storyhub/docs" // swagger docs
	"storyhub/internal/auth"
	"storyhub/internal/cache"
	"storyhub/internal/config"
	"storyhub/internal/database"
	"storyhub/internal/middleware"
	"storyhub/internal/models"
	"storyhub/internal/notifications"
	"storyhub/internal/observability"
	"storyhub/internal/repository"
	"storyhub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const bodyLimit = 1 << 20

var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
)

// httpMetrics registers the HTTP collectors once per process.
func httpMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New(observability.ServiceName)
	})
	return promMiddleware
}

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redis       *redis.Client
	app         *fiber.App
	shutdownCtx context.Context
	shutdownFn  context.CancelFunc

	authService    *service.AuthService
	storyService   *service.StoryService
	commentService *service.CommentService
	likeService    *service.LikeService
	feed           *notifications.Feed
}

// NewServer wires services over an already connected database and an
// optional Redis client, and builds the Fiber app.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	// Keep the interface nil without Redis so logout reports that revocation is off.
	var revoker service.TokenRevoker
	if redisClient != nil {
		revoker = cache.NewTokenDenylist(redisClient)
	}

	store := repository.NewStore(db)
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		authService:    service.NewAuthService(store, auth.NewPasswordHasher(cfg.BcryptCost), tokens, revoker),
		storyService:   service.NewStoryService(store),
		commentService: service.NewCommentService(store),
		likeService:    service.NewLikeService(store),
		feed:           notifications.NewFeed(notifications.NewHub(), notifications.NewNotifier(redisClient)),
	}
	s.shutdownCtx, s.shutdownFn = context.WithCancel(context.Background())

	s.app = fiber.New(fiber.Config{
		AppName:      "StoryHub API",
		BodyLimit:    bodyLimit,
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(s.app)
	s.SetupRoutes(s.app)

	return s, nil
}

// App exposes the Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Spans first so the trace id reaches the request context
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	prom := httpMetrics()
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
}

// SetupRoutes configures all API routes
func (s *Server) SetupRoutes(app *fiber.App) {
	requireAuth := middleware.RequireAuth(s.authService)
	optionalAuth := middleware.OptionalAuth(s.authService)

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	app.Get("/swagger/*", swagger.HandlerDefault)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", s.Register)
	authGroup.Post("/login", s.Login)
	authGroup.Post("/logout", requireAuth, s.Logout)

	stories := app.Group("/stories")
	stories.Get("/", s.ListStories)
	stories.Post("/", requireAuth, s.CreateStory)
	stories.Delete("/comments/:id", requireAuth, s.DeleteComment)
	stories.Get("/:id", s.GetStory)
	stories.Put("/:id", requireAuth, s.UpdateStory)
	stories.Delete("/:id", requireAuth, s.DeleteStory)
	stories.Get("/:id/comments", s.ListComments)
	stories.Post("/:id/comments", requireAuth, s.CreateComment)
	stories.Get("/:id/like", optionalAuth, s.LikeStatus)
	stories.Post("/:id/like", requireAuth, s.LikeStory)
	stories.Delete("/:id/like", requireAuth, s.UnlikeStory)

	app.Delete("/comments/:id", requireAuth, s.DeleteComment)

	app.Get("/ws/events", optionalAuth, requireUpgrade, websocket.New(s.FeedHandler))
}

// errorHandler renders errors that escaped a handler. Only client errors
// raised by Fiber itself keep their message.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message, Code: codeForStatus(fe.Code)})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return models.RespondWithError(c, err)
}

// Start wires the activity feed and listens until Shutdown.
func (s *Server) Start() error {
	if err := s.feed.Start(s.shutdownCtx); err != nil {
		middleware.Logger.Warn("activity feed relay unavailable; serving local clients only",
			slog.String("error", err.Error()))
	}

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stops the Redis subscriber
	s.shutdownFn()

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
	}

	if err := s.feed.Hub().Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down feed hub", slog.String("error", err.Error()))
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing database", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
