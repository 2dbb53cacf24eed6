package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/session"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campusnotes/internal/config"
	"campusnotes/internal/database"
	"campusnotes/internal/database/migration"
	handlers "campusnotes/internal/http/handler"
	"campusnotes/internal/http/middleware"
	"campusnotes/internal/otel"
	"campusnotes/internal/repository/postgres"
	"campusnotes/internal/service"
	"campusnotes/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.Local
	ctx := context.Background()

	// Tracing is optional; a failed exporter degrades to a noop provider.
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Printf("tracing disabled: %v", err)
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Object storage is degradable: without it the app still serves auth and
	// browsing, and uploads/downloads fail with a retryable error.
	objStore := newObjectStorage(cfg.MinIO)

	// Initialize repositories and services
	userRepo := postgres.NewUserPostgres(db)
	noteRepo := postgres.NewNotePostgres(db)
	authSvc := service.NewAuthService(userRepo, noteRepo, objStore)
	noteSvc := service.NewNoteService(objStore, noteRepo, userRepo, cfg.Upload)

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.Upload.MaxBytes,
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Session cookies are encrypted at the transport layer. Without a
	// configured secret a fresh key is generated, so sessions end on restart.
	secret := cfg.Session.Secret
	if secret == "" {
		secret = encryptcookie.GenerateKey()
		log.Println("SESSION_SECRET not set, generated an ephemeral cookie key")
	}
	app.Use(encryptcookie.New(encryptcookie.Config{Key: secret}))

	store := session.New(session.Config{
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		Expiration:     time.Duration(cfg.Session.TTLHours) * time.Hour,
		CookieHTTPOnly: true,
	})

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, store, authSvc, noteSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newObjectStorage connects to MinIO when configured and falls back to a
// stub whose operations all fail with storage.ErrUnavailable otherwise.
func newObjectStorage(cfg config.MinIOConfig) storage.Storage {
	if cfg.Endpoint == "" {
		log.Println("MINIO_ENDPOINT not set, object storage unavailable")
		return storage.Unavailable()
	}
	objStore, err := storage.NewMinIO(cfg)
	if err != nil {
		log.Printf("failed to initialize object storage, continuing without it: %v", err)
		return storage.Unavailable()
	}
	return objStore
}
