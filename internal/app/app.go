package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	appHTTP "insta-scheduler/internal/controller/http"
	"insta-scheduler/internal/repo/persistent"
	"insta-scheduler/internal/scheduler"
	"insta-scheduler/internal/usecase"
	"insta-scheduler/pkg/cache"
	"insta-scheduler/pkg/config"
	"insta-scheduler/pkg/database"
	"insta-scheduler/pkg/graph"
	"insta-scheduler/pkg/jwt"
	"insta-scheduler/pkg/logger"
	"insta-scheduler/pkg/middleware"
	"insta-scheduler/pkg/s3"

	_ "insta-scheduler/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	graphClient *graph.Client
	scheduler   *scheduler.Scheduler
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (media uploads disabled)", err)
		s3Client = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		graphClient: graph.NewClient(cfg),
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	accountRepo := persistent.NewAccountRepository(a.db)
	postRepo := persistent.NewPostRepository(a.db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.graphClient, a.jwtService, a.cfg, a.log)
	accountUseCase := usecase.NewAccountUseCase(userRepo, accountRepo, a.graphClient, a.log)

	var mediaStore usecase.MediaStore
	if a.s3Client != nil {
		mediaStore = a.s3Client
	}
	scheduleUseCase := usecase.NewScheduleUseCase(postRepo, accountRepo, mediaStore, a.redisClient, a.log)

	// Initialize HTTP handlers
	authHandler := appHTTP.NewAuthHandler(authUseCase, a.redisClient, a.jwtService, a.cfg, a.log)
	accountHandler := appHTTP.NewAccountHandler(accountUseCase, a.log)
	postHandler := appHTTP.NewPostHandler(scheduleUseCase, a.log)

	// Start the publish scheduler
	a.scheduler = scheduler.New(
		postRepo,
		a.graphClient,
		a.log,
		time.Duration(a.cfg.SchedulerIntervalSeconds)*time.Second,
		time.Duration(a.cfg.PublishTimeoutSeconds)*time.Second,
	)
	a.scheduler.Start()

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{a.cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// OAuth endpoints stay outside the session guard
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(a.redisClient, 20, time.Minute))
	{
		auth.GET("/facebook", authHandler.FacebookLogin)
		auth.GET("/facebook/callback", authHandler.FacebookCallback)
		auth.GET("/status", authHandler.Status)
		auth.POST("/logout", authHandler.Logout)
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(a.jwtService))
	{
		api.GET("/accounts", accountHandler.ListAccounts)
		api.POST("/accounts/sync", accountHandler.SyncAccounts)
		api.POST("/posts", postHandler.SchedulePost)
		api.GET("/posts", postHandler.ListPosts)
		api.DELETE("/posts/:id", postHandler.DeletePost)
		api.POST("/media", postHandler.UploadMedia)
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Server starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop the scheduler first so no publish is cut off mid-protocol
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.httpServer != nil {
		return a.httpServer.Shutdown(ctx)
	}
	return nil
}
