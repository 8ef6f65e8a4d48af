package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mediplan/api/internal/auth"
	"github.com/mediplan/api/internal/config"
	"github.com/mediplan/api/internal/handlers"
	"github.com/mediplan/api/internal/middleware"
	"github.com/mediplan/api/internal/repository"
	"github.com/mediplan/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	db := client.Database(cfg.MongoDatabase)
	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	// --- Optional doctor-directory cache ---
	var cache repository.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			cache = repository.NewRedisCache(rdb, logger)
			logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
		}
	}

	// --- Components ---
	tokens, err := auth.NewManager(cfg.JWTSecret)
	if err != nil {
		logger.Fatal("Token manager init failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, logger)
	aptRepo := repository.NewAppointmentRepository(db, logger)

	authSvc := service.NewAuthService(userRepo, tokens, cache, logger)
	aptSvc := service.NewAppointmentService(aptRepo, userRepo, logger)
	dirSvc := service.NewDirectoryService(userRepo, cache, logger)

	h := handlers.NewHandler(authSvc, aptSvc, dirSvc, logger)

	// --- Gin Router ---
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	api := r.Group("/api")
	api.GET("/health", h.Health)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.POST("/reset-password", h.ResetPassword)
		authRoutes.GET("/me", middleware.Auth(tokens), h.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(tokens))
	{
		protected.GET("/appointments", h.GetAppointments)
		protected.POST("/appointments", h.CreateAppointment)
		protected.PUT("/appointments/:id", h.UpdateAppointment)
		protected.DELETE("/appointments/:id", h.DeleteAppointment)

		protected.GET("/users", h.GetUsers)
		protected.GET("/users/doctors", h.GetDoctors)
	}

	logger.Info("Starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
