package router

import (
	"context"

	"github.com/anonto42/socialite/backend/internal/handlers"
	"github.com/anonto42/socialite/backend/internal/middleware"
	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/repositories"
	"github.com/anonto42/socialite/backend/internal/services"
	"github.com/anonto42/socialite/backend/pkg/config"
	"github.com/anonto42/socialite/backend/pkg/events"
	"github.com/anonto42/socialite/backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// Deps is everything the routes are built from. Firebase, Publisher and
// DB.Mongo may be nil.
type Deps struct {
	Config    *config.Config
	DB        *config.DB
	Firebase  middleware.IDTokenVerifier
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Log       *logrus.Entry
}

// Migrate creates or updates the PostgreSQL schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Story{},
		&models.Like{},
		&models.Share{},
		&models.Follow{},
		&models.FollowRequest{},
		&models.Block{},
		&models.ProfileVisit{},
	)
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, d Deps, jwt *middleware.JWTManager) {
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())

	e.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		e.Use(middleware.Metrics(d.Metrics))
	}

	verifiers := []middleware.Verifier{jwt}
	if d.Firebase != nil {
		verifiers = append(verifiers, middleware.NewFirebaseVerifier(d.Firebase))
	}
	e.Use(middleware.Identity(d.Log, verifiers...))
	d.Log.WithField("verifiers", len(verifiers)).Info("Global middleware configured.")
}

// SetupRoutes wires repositories, services and handlers onto e
func SetupRoutes(e *echo.Echo, d Deps, jwt *middleware.JWTManager) {
	pgdb := d.DB.Postgres

	// --- Health ---
	checks := []handlers.HealthCheck{{
		Name: "postgres",
		Probe: func(ctx context.Context) error {
			sqlDB, err := pgdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if d.DB.Mongo != nil {
		checks = append(checks, handlers.HealthCheck{
			Name:  "mongo",
			Probe: func(ctx context.Context) error { return d.DB.Mongo.Ping(ctx, readpref.Primary()) },
		})
	}
	e.GET("/health", handlers.NewHealthHandler(checks...).Health)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	shareRepo := repositories.NewPostgresShareRepository(pgdb)
	storyRepo := repositories.NewStoryRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	requestRepo := repositories.NewPostgresFollowRequestRepository(pgdb)
	blockRepo := repositories.NewPostgresBlockRepository(pgdb)

	var visitRepo repositories.VisitRepository
	if d.DB.Mongo != nil {
		visitRepo = repositories.NewMongoVisitRepository(d.DB.Mongo.Database(d.Config.MongoDatabase))
		d.Log.Info("Profile visits stored in MongoDB.")
	} else {
		visitRepo = repositories.NewPostgresVisitRepository(pgdb)
		d.Log.Info("Profile visits stored in PostgreSQL.")
	}

	// --- Initialize Services ---
	bus := events.NewBus(d.Publisher, d.Log.WithField("component", "events"))
	feedService := services.NewFeedService(userRepo, followRepo, postRepo, shareRepo, d.Log.WithField("component", "feed"), d.Metrics)
	storyService := services.NewStoryService(storyRepo, likeRepo, bus, d.Config.StoryTTL, d.Log.WithField("component", "stories"), d.Metrics)
	postService := services.NewPostService(postRepo, commentRepo, likeRepo, shareRepo, bus, d.Config.StrictPostValidation, d.Log.WithField("component", "posts"), d.Metrics)
	graphService := services.NewGraphService(userRepo, followRepo, requestRepo, blockRepo, d.Log.WithField("component", "graph"), d.Metrics)
	userService := services.NewUserService(userRepo, followRepo, blockRepo, visitRepo, d.Log.WithField("component", "users"), d.Metrics)

	// --- Authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userService, d.Firebase, jwt, d.Log.WithField("component", "auth"))
	authHandler.RegisterAuthRoutes(authGroup, d.Config.DevTokensEnabled())
	d.Log.Info("Auth routes configured.")

	api := e.Group("/api/v1")

	handlers.NewUserHandler(userService).RegisterUserRoutes(api)
	d.Log.Info("User profile routes configured.")

	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api)
	d.Log.Info("Feed routes configured.")

	handlers.NewPostHandler(postService).RegisterPostRoutes(api)
	handlers.NewLikeHandler(postService).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(postService).RegisterCommentRoutes(api)
	d.Log.Info("Post, like and comment routes configured.")

	handlers.NewStoryHandler(storyService).RegisterStoryRoutes(api)
	d.Log.Info("Story routes configured.")

	handlers.NewFollowHandler(graphService).RegisterFollowRoutes(api)
	d.Log.Info("Follow and block routes configured.")

	d.Log.Info("All routes configured.")
}
