package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/postboard/backend/internal/cache"
	"github.com/postboard/backend/internal/handlers"
	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/repositories"
	"github.com/postboard/backend/internal/service"
	"github.com/postboard/backend/internal/storage"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// mgClient, rdb and firebaseAuthClient may be nil: images then live in
// memory, feeds are served uncached and Firebase login is disabled.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, rdb *redis.Client, firebaseAuthClient *auth.Client) {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)

	// --- Supporting infrastructure ---
	var blobStore storage.BlobStore
	if mgClient != nil {
		store, err := storage.NewGridFSStore(mgClient.Database("postboard"))
		if err != nil {
			log.Fatalf("Failed to initialize GridFS image store: %v", err)
		}
		blobStore = store
		log.Println("GridFS image store configured.")
	} else {
		blobStore = storage.NewMemoryStore()
		log.Println("MongoDB not configured, images held in memory.")
	}

	var feedCache *cache.FeedCache
	if rdb != nil {
		feedCache = cache.NewFeedCache(rdb)
		log.Println("Redis feed cache configured.")
	}

	// --- Initialize services ---
	feedService := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, commentRepo, feedCache)
	postService := service.NewPostService(postRepo, groupRepo, commentRepo, blobStore, feedCache)
	followService := service.NewFollowService(followRepo, userRepo)
	groupService := service.NewGroupService(groupRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public routes (reads; a JWT is honored but never required) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuthMiddleware())

	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(public)
	log.Println("Feed routes configured.")

	groupHandler := handlers.NewGroupHandler(groupService)
	groupHandler.RegisterPublicGroupRoutes(public)

	imageHandler := handlers.NewImageHandler(blobStore)
	imageHandler.RegisterImageRoutes(public)
	log.Println("Image routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	feedHandler.RegisterFollowedFeedRoute(api)

	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	commentHandler := handlers.NewCommentHandler(postService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	groupHandler.RegisterGroupRoutes(api)
	log.Println("Group routes configured.")
}
