package router

import (
	"fmt"

	"github.com/anonto42/book-hearts/backend/internal/handlers"
	"github.com/anonto42/book-hearts/backend/internal/middleware"
	"github.com/anonto42/book-hearts/backend/internal/models"
	"github.com/anonto42/book-hearts/backend/internal/repositories"
	"github.com/anonto42/book-hearts/backend/internal/services"
	"github.com/anonto42/book-hearts/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes and injects dependencies.
// mgClient is only used when cfg.MessageStore is mongo; verifier only when
// cfg.AuthProvider is firebase.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, verifier middleware.TokenVerifier, cfg *config.Config) error {
	if err := models.Migrate(pgdb); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	logrus.Info("PostgreSQL auto-migrations completed for all models.")

	e.HTTPErrorHandler = handlers.ErrorHandler

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	bookRepo := repositories.NewPostgresBookRepository(pgdb)
	bookshelfRepo := repositories.NewPostgresBookshelfRepository(pgdb)
	heartRepo := repositories.NewPostgresHeartRepository(pgdb)

	var messageRepo repositories.MessageRepository
	switch cfg.MessageStore {
	case config.MessageStoreMongo:
		if mgClient == nil {
			return fmt.Errorf("message store %q needs a MongoDB connection", cfg.MessageStore)
		}
		messageRepo = repositories.NewMongoMessageRepository(mgClient.Database(cfg.MongoDatabase))
	default:
		messageRepo = repositories.NewPostgresMessageRepository(pgdb)
	}
	logrus.WithField("store", cfg.MessageStore).Info("Message store configured.")

	// --- Protected routes ---
	api := e.Group("/api/v1")
	switch cfg.AuthProvider {
	case config.AuthProviderFirebase:
		if verifier == nil {
			return fmt.Errorf("auth provider %q needs a Firebase auth client", cfg.AuthProvider)
		}
		api.Use(middleware.FirebaseAuthMiddleware(verifier, userRepo))
	default:
		api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	}
	logrus.WithField("provider", cfg.AuthProvider).Info("Authentication middleware applied to /api/v1 group.")

	// Heart routes
	heartService := services.NewHeartService(heartRepo, bookshelfRepo, userRepo, bookRepo)
	heartHandler := handlers.NewHeartHandler(heartService)
	heartHandler.RegisterHeartRoutes(api)
	logrus.Info("Heart routes configured.")

	// Notification routes
	notificationService := services.NewNotificationService(heartRepo, messageRepo, userRepo, bookRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	logrus.Info("Notification routes configured.")

	logrus.Info("All routes configured.")
	return nil
}
