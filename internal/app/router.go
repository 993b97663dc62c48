package app

import (
	"log"
	"time"

	"socialbook/internal/config"
	"socialbook/internal/middleware"
	"socialbook/internal/model"
	"socialbook/internal/repository"
	"socialbook/internal/service"
	"socialbook/internal/util"
	"socialbook/internal/websocket"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	// Set Gin mode
	if cfg.ServerPort == "5000" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware(cfg.ClientURL))

	// Rate limiting middleware (if enabled)
	if cfg.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&model.User{},
		&model.FriendRequest{},
		&model.Friendship{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Save{},
	); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	// Initialize Redis with retry logic
	redisClient := initRedisWithRetry(cfg)

	// Initialize RabbitMQ with retry logic
	rabbitMQ := initRabbitMQWithRetry(cfg)

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("WebSocket hub started")

	// Initialize Cloudinary client
	var cloudinaryClient *util.CloudinaryClient
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinaryClient, err = util.NewCloudinaryClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v. Image uploads will be disabled.", err)
		} else {
			log.Println("Cloudinary initialized successfully")
		}
	} else {
		log.Println("Cloudinary credentials not configured. Image uploads will be disabled.")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewFriendRequestRepository(db, redisClient)
	friendshipRepo := repository.NewFriendshipRepository(db, redisClient)
	postRepo := repository.NewPostRepository(db, redisClient)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	saveRepo := repository.NewSaveRepository(db)

	var counterStore repository.CounterStore
	if redisClient != nil {
		counterStore = repository.NewCounterStore(redisClient)
	} else {
		log.Println("Warning: Redis unavailable, friend-request rate limiting disabled")
	}

	// Initialize services
	notificationService := service.NewNotificationService(rabbitMQ)
	notificationService.SetWSHub(wsHub)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	profileService := service.NewProfileService(userRepo)
	friendshipService := service.NewFriendshipService(
		requestRepo, friendshipRepo, userRepo, counterStore, notificationService,
		cfg.FriendRequestLimit, cfg.FriendRequestWindow,
	)
	postService := service.NewPostService(postRepo, userRepo, cfg.PublicURL)
	likeService := service.NewLikeService(likeRepo, postRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)
	saveService := service.NewSaveService(saveRepo, postRepo)

	// Initialize handlers
	authHandler := NewAuthHandler(authService, cfg.JWTSecret)
	userHandler := NewUserHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	friendshipHandler := NewFriendshipHandler(friendshipService)
	postHandler := NewPostHandler(postService)
	likeHandler := NewLikeHandler(likeService)
	commentHandler := NewCommentHandler(commentService)
	saveHandler := NewSaveHandler(saveService)
	uploadHandler := NewUploadHandler(cloudinaryClient)

	// API routes
	api := r.Group("/api/v1")
	{
		// Public routes
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/refresh-token", authHandler.RefreshToken)
		api.GET("/search", userHandler.SearchUsers)
		api.POST("/posts/:id/share", postHandler.SharePost)

		// Protected routes
		protected := api.Group("")
		protected.Use(authHandler.AuthMiddleware())
		{
			protected.GET("/profile", profileHandler.GetProfile)
			protected.PUT("/profile/update", profileHandler.UpdateProfile)
			protected.PATCH("/profile/update", profileHandler.UpdateProfile)

			protected.POST("/send-friend-request", friendshipHandler.SendFriendRequest)
			protected.POST("/accept-friend-request", friendshipHandler.AcceptFriendRequest)
			protected.POST("/reject-friend-request", friendshipHandler.RejectFriendRequest)
			protected.GET("/friend-requests", friendshipHandler.ListFriendRequests)
			protected.GET("/friends", friendshipHandler.ListFriends)
			protected.DELETE("/friends/:id", friendshipHandler.RemoveFriend)

			protected.GET("/userposts", postHandler.ListOwnPosts)
			protected.POST("/userposts", postHandler.CreatePost)
			protected.GET("/globalposts", postHandler.ListGlobalFeed)

			protected.GET("/posts/:id/like", likeHandler.ListLikes)
			protected.POST("/posts/:id/like", likeHandler.LikePost)
			protected.DELETE("/posts/:id/like", likeHandler.UnlikePost)

			protected.GET("/posts/:id/comment", commentHandler.ListComments)
			protected.POST("/posts/:id/comment", commentHandler.CommentPost)

			protected.POST("/posts/:id/save", saveHandler.SavePost)
			protected.DELETE("/posts/:id/save", saveHandler.UnsavePost)
			protected.GET("/saved-posts", saveHandler.ListSavedPosts)

			protected.POST("/upload", uploadHandler.UploadImage)
		}
	}

	// WebSocket route
	r.GET("/ws", func(c *gin.Context) {
		websocket.ServeWS(wsHub, cfg.JWTSecret).ServeHTTP(c.Writer, c.Request)
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = "host=" + cfg.PostgresHost +
			" port=" + cfg.PostgresPort +
			" user=" + cfg.PostgresUser +
			" password=" + cfg.PostgresPassword +
			" dbname=" + cfg.PostgresDB +
			" sslmode=" + cfg.PostgresSSLMode
	}

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// initRedisWithRetry attempts to connect to Redis with exponential backoff retry
func initRedisWithRetry(cfg *config.Config) *util.RedisClient {
	maxRetries := 10
	initialDelay := 2 * time.Second
	maxDelay := 30 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		redisClient, err := util.NewRedisClient(cfg)
		if err == nil {
			log.Printf("Redis connected successfully on attempt %d", attempt)
			return redisClient
		}

		if attempt < maxRetries {
			delay := initialDelay * time.Duration(1<<uint(attempt-1))
			if delay > maxDelay {
				delay = maxDelay
			}

			log.Printf("Failed to connect to Redis (attempt %d/%d): %v. Retrying in %v...", attempt, maxRetries, err, delay)
			time.Sleep(delay)
		} else {
			log.Printf("Warning: Failed to connect to Redis after %d attempts: %v. Caching and rate limiting will be disabled.", maxRetries, err)
		}
	}

	return nil
}

// initRabbitMQWithRetry attempts to connect to RabbitMQ with exponential backoff retry
func initRabbitMQWithRetry(cfg *config.Config) *util.RabbitMQClient {
	maxRetries := 5
	initialDelay := 2 * time.Second
	maxDelay := 30 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		rabbitMQ, err := util.NewRabbitMQClient(cfg)
		if err == nil {
			log.Printf("RabbitMQ connected successfully on attempt %d", attempt)
			return rabbitMQ
		}

		if attempt < maxRetries {
			delay := initialDelay * time.Duration(1<<uint(attempt-1))
			if delay > maxDelay {
				delay = maxDelay
			}

			log.Printf("Failed to connect to RabbitMQ (attempt %d/%d): %v. Retrying in %v...", attempt, maxRetries, err, delay)
			time.Sleep(delay)
		} else {
			log.Printf("Warning: Failed to connect to RabbitMQ after %d attempts: %v. Friend events will only reach websocket clients.", maxRetries, err)
		}
	}

	return nil
}

func corsMiddleware(clientURL string) gin.HandlerFunc {
	allowedOrigins := []string{
		clientURL,
		"http://localhost:3000",
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", clientURL)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
