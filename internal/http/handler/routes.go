package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"campusnotes/internal/http/middleware"
	"campusnotes/internal/service"
)

// Landing is the public landing page payload.
func Landing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "campusnotes", "status": "ok"})
	}
}

// HealthCheck verifies DB connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay free of business logic; all policy lives in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, store *session.Store, authSvc service.AuthService, noteSvc service.NoteService) {
	app.Get("/", Landing())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/docs", Docs())
	app.Get("/openapi.yaml", OpenAPISpec())

	// Public auth routes; authenticated users get bounced to the dashboard.
	app.Get("/register", RegisterPage(store))
	app.Post("/register", Register(authSvc, store))
	app.Get("/login", LoginPage(store))
	app.Post("/login", Login(authSvc, store))

	// Everything below requires a session.
	guard := middleware.RequireAuth(store)

	app.Get("/logout", guard, Logout(store))
	app.Get("/dashboard", guard, Dashboard(noteSvc))
	app.Get("/browse", guard, Browse(noteSvc))
	app.Get("/upload", guard, UploadPage())
	app.Post("/upload", guard, Upload(noteSvc))
	app.Get("/download/:id", guard, Download(noteSvc))
	app.Post("/delete/:id", guard, Delete(noteSvc))
	app.Get("/profile", guard, Profile(noteSvc))
	app.Post("/account/delete", guard, DeleteAccount(authSvc, store))
}
