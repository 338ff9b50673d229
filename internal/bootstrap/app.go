// Package bootstrap assembles the application: configuration, logging,
// infrastructure, repositories, services, handlers and routes.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "focushive/internal/handler/http"
	gormpersistence "focushive/internal/infra/persistence/gorm"
	"focushive/internal/infra/setup"
	redisstate "focushive/internal/infra/state/redis"
	"focushive/internal/middleware"
	"focushive/internal/service"
	"focushive/internal/worker"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DBUser          string
	DBPassword      string
	DBHost          string
	DBPort          string
	DBName          string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	ServerPort      string
	LogLevel        string
	RateLimitMax    int
	RateLimitWindow time.Duration
	JWTExpiryHours  int
	AppEnv          string
	KeyPrefix       string
}

// LoadConfig reads configuration from the environment, with a .env file as
// an optional overlay for local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBName:        os.Getenv("DB_NAME"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		AppEnv:        os.Getenv("APP_ENV"),
		KeyPrefix:     os.Getenv("REDIS_KEY_PREFIX"),

		RateLimitMax:    100,
		RateLimitWindow: 1 * time.Second,
		JWTExpiryHours:  24,
	}

	redisDBStr := os.Getenv("REDIS_DB")
	cfg.RedisDB, _ = strconv.Atoi(redisDBStr)

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "fh:"
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App bundles the long-lived components of the running service.
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	AsynqClient *asynq.Client
	AsynqServer *worker.WorkerServer
	HttpServer  *http.Server
}

// NewApp wires up the whole application.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	log.Info("Configuration loaded successfully")

	log.Info("Initializing infrastructure...")
	db, err := setup.InitDB(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database initialized and migrated")

	redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	log.Info("Redis client initialized")

	redisClientOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	asynqClient := asynq.NewClient(redisClientOpt)
	log.Info("Asynq client initialized")

	log.Info("Initializing repositories...")
	userRepo := gormpersistence.NewGormUserRepository(db)
	friendRepo := gormpersistence.NewGormFriendRepository(db)
	roomRepo := gormpersistence.NewGormRoomRepository(db)
	timerRepo := gormpersistence.NewGormTimerRepository(db)
	scoreRepo := gormpersistence.NewGormScoreRepository(db)
	statusRepo := gormpersistence.NewGormStatusRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	taskRepo := gormpersistence.NewGormTaskRepository(db)
	rewardRepo := gormpersistence.NewGormRewardRepository(db)
	roomLocker := redisstate.NewRedisRoomLocker(redisClient, cfg.KeyPrefix)
	log.Info("Repositories initialized")

	log.Info("Initializing services...")
	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	userService := service.NewUserService(userRepo)
	friendService := service.NewFriendService(friendRepo, userRepo)
	roomService := service.NewRoomService(roomRepo, roomLocker)
	timerService := service.NewTimerService(timerRepo, roomRepo, asynqClient)
	focusService := service.NewFocusService(
		roomService, timerService,
		roomRepo, timerRepo, friendRepo, userRepo, rewardRepo, roomLocker,
	)
	leaderboardService := service.NewLeaderboardService(scoreRepo, friendRepo, userRepo)
	scoreService := service.NewScoreService(scoreRepo, userRepo)
	statusService := service.NewStatusService(statusRepo, userRepo)
	postService := service.NewPostService(postRepo, userRepo)
	taskService := service.NewTaskService(taskRepo)
	log.Info("Services initialized")

	log.Info("Initializing handlers...")
	authHandler := httpHandler.NewAuthHandler(authService)
	userHandler := httpHandler.NewUserHandler(userService)
	friendHandler := httpHandler.NewFriendHandler(friendService)
	roomHandler := httpHandler.NewRoomHandler(roomService, userService)
	timerHandler := httpHandler.NewTimerHandler(timerService)
	focusRoomHandler := httpHandler.NewFocusRoomHandler(focusService, roomService, leaderboardService)
	scoreHandler := httpHandler.NewScoreHandler(scoreService)
	statusHandler := httpHandler.NewStatusHandler(statusService)
	postHandler := httpHandler.NewPostHandler(postService)
	taskHandler := httpHandler.NewTaskHandler(taskService)
	log.Info("Handlers initialized")

	log.Info("Initializing worker server...")
	workerServer := worker.NewWorkerServer(redisClientOpt, timerRepo, log)

	log.Info("Setting up Gin router...")
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow))

	api := router.Group("/api")
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWTSecret))
	{
		authed.GET("/users", userHandler.List)
		authed.GET("/users/:username", userHandler.GetByUsername)
		authed.PATCH("/users", userHandler.Update)
		authed.DELETE("/users", userHandler.Delete)

		authed.GET("/friends", friendHandler.ListFriends)
		authed.DELETE("/friends/:friend", friendHandler.RemoveFriend)
		authed.GET("/friend/requests", friendHandler.ListRequests)
		authed.POST("/friend/requests/:to", friendHandler.SendRequest)
		authed.DELETE("/friend/requests/:to", friendHandler.RemoveRequest)
		authed.PUT("/friend/accept/:from", friendHandler.AcceptRequest)
		authed.PUT("/friend/reject/:from", friendHandler.RejectRequest)

		authed.POST("/posts", postHandler.Create)
		authed.GET("/posts", postHandler.List)
		authed.PATCH("/posts/:id", postHandler.Update)
		authed.DELETE("/posts/:id", postHandler.Delete)

		authed.POST("/rooms", roomHandler.CreateRoom)
		authed.GET("/rooms", roomHandler.GetByHost)
		authed.GET("/rooms/occupants", roomHandler.Occupants)
		authed.PUT("/rooms/occupants/remove/:username", roomHandler.RemoveOccupant)
		authed.PUT("/rooms/occupants/:username", roomHandler.AddOccupant)

		authed.POST("/timers", timerHandler.Create)
		authed.GET("/timers/:id", timerHandler.Get)
		authed.PUT("/timers/:id/start", timerHandler.Start)
		authed.PUT("/timers/:id/complete", timerHandler.Complete)
		authed.PUT("/timers/:id/reset", timerHandler.Reset)
		authed.PATCH("/timers/:id", timerHandler.Update)

		authed.POST("/focusrooms", focusRoomHandler.Create)
		authed.PUT("/focusrooms/occupants/remove/:username", focusRoomHandler.RemoveOccupant)
		authed.PUT("/focusrooms/occupants/:username", focusRoomHandler.AddOccupant)
		authed.POST("/focusrooms/reward", focusRoomHandler.Reward)
		authed.GET("/leaderboard", focusRoomHandler.Leaderboard)

		authed.POST("/scores", scoreHandler.Create)
		authed.GET("/scores", scoreHandler.Get)
		authed.PUT("/scores/set", scoreHandler.Set)
		authed.PUT("/scores/update/:username", scoreHandler.Update)

		authed.POST("/status", statusHandler.Create)
		authed.GET("/status", statusHandler.Get)
		authed.PUT("/status", statusHandler.Update)

		authed.GET("/tasks", taskHandler.List)
		authed.POST("/tasks", taskHandler.Create)
		authed.PATCH("/tasks/:id", taskHandler.Update)
	}
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	log.Info("Router setup complete")

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	app := &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		AsynqClient: asynqClient,
		AsynqServer: workerServer,
		HttpServer:  httpServer,
	}
	log.Info("Application assembled successfully")

	return app, nil
}

// Start launches the worker server and the HTTP server. Both run until
// Shutdown is called.
func (a *App) Start() {
	go a.AsynqServer.Start()
	a.Log.Info("Asynq worker server routine started")

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown stops components in dependency order.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	a.Log.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowedOrigin := os.Getenv("CORS_ALLOWED_ORIGIN")
		if allowedOrigin == "" {
			allowedOrigin = "http://localhost:3000"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggerMiddleware records one structured log line per request.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		switch {
		case errorMessage != "":
			entry.Error(errorMessage)
		case statusCode >= 500:
			entry.Error("Server error")
		case statusCode >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request handled")
		}
	}
}
