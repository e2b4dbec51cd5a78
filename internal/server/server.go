// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"threadloom/internal/cache"
	"threadloom/internal/config"
	"threadloom/internal/database"
	"threadloom/internal/middleware"
	"threadloom/internal/models"
	"threadloom/internal/repository"
	"threadloom/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config        *config.Config
	db            *gorm.DB
	redis         *redis.Client
	userRepo      repository.UserRepository
	threadRepo    repository.ThreadRepository
	communityRepo repository.CommunityRepository

	threadService   *service.ThreadService
	feedService     *service.FeedService
	userService     *service.UserService
	activityService *service.ActivityService
	uploadService   *service.UploadService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	middleware.InitMiddleware(cfg)

	var store service.ObjectStore
	minioClient, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		log.Printf("Object storage warning: %v (uploads disabled)", err)
	} else {
		store = minioClient
	}

	return newServer(cfg, db, redisClient, store), nil
}

// newServer wires repositories and services over the given connections.
func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store service.ObjectStore) *Server {
	userRepo := repository.NewUserRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	communityRepo := repository.NewCommunityRepository(db)

	s := &Server{
		config:        cfg,
		db:            db,
		redis:         redisClient,
		userRepo:      userRepo,
		threadRepo:    threadRepo,
		communityRepo: communityRepo,
	}

	s.threadService = service.NewThreadService(threadRepo, userRepo, cache.InvalidateView, cfg.ThreadDepth)
	s.feedService = service.NewFeedService(threadRepo)
	s.userService = service.NewUserService(userRepo, threadRepo, communityRepo, cache.InvalidateView)
	s.activityService = service.NewActivityService(threadRepo, userRepo)
	if store != nil {
		s.uploadService = service.NewUploadService(store, cfg.S3Bucket, cfg.S3PublicURL)
	}

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	prom := fiberprometheus.New("threadloom")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
}

// SetupRoutes registers all API routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.Health)

	api := app.Group("/api")

	threads := api.Group("/threads")
	threads.Get("/", s.GetFeed)
	threads.Get("/:id", s.GetThread)
	threads.Post("/", middleware.AuthRequired, s.CreateThread)
	threads.Post("/:id/comments", middleware.AuthRequired, s.AddComment)

	users := api.Group("/users")
	users.Get("/", middleware.AuthRequired, s.ListUsers)
	users.Post("/profile", middleware.AuthRequired, s.UpdateProfile)
	users.Get("/:id", s.GetUser)
	users.Get("/:id/threads", s.GetUserThreads)
	users.Get("/:id/activity", s.GetActivity)

	communities := api.Group("/communities")
	communities.Get("/", s.ListCommunities)
	communities.Get("/:slug", s.GetCommunity)
	communities.Post("/", middleware.AuthRequired, s.CreateCommunity)

	api.Post("/uploads", middleware.AuthRequired, s.Upload)
}

// Health reports service liveness.
func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(_ context.Context) error {
	cache.Close()
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}

// respondError maps an application error onto an HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		}
	}

	return models.RespondWithError(c, status, err)
}

// callerAuthID returns the authenticated caller's external auth ID.
func callerAuthID(c *fiber.Ctx) string {
	if v, ok := c.Locals("authID").(string); ok {
		return v
	}
	return ""
}
