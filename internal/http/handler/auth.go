package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"campusnotes/internal/http/middleware"
	"campusnotes/internal/service"
)

// RegisterPage redirects authenticated users to the dashboard; everyone else
// gets a 200 so a client can render the form.
func RegisterPage(store *session.Store) fiber.Handler {
	return redirectIfAuthenticated(store)
}

// LoginPage behaves like RegisterPage.
func LoginPage(store *session.Store) fiber.Handler {
	return redirectIfAuthenticated(store)
}

func redirectIfAuthenticated(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if middleware.SessionUserID(store, c) != "" {
			return c.Redirect("/dashboard", fiber.StatusFound)
		}
		return c.SendStatus(fiber.StatusOK)
	}
}

// Register creates a new account (form fields: name, email, password).
func Register(authSvc service.AuthService, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if middleware.SessionUserID(store, c) != "" {
			return c.Redirect("/dashboard", fiber.StatusFound)
		}

		name := strings.TrimSpace(c.FormValue("name"))
		email := strings.TrimSpace(c.FormValue("email"))
		password := c.FormValue("password")
		if name == "" || email == "" || password == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "name, email and password are required")
		}

		u, err := authSvc.Register(c.UserContext(), name, email, password)
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "email already registered")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// Login verifies credentials, binds the session to the user, and redirects to
// the originally requested path (next) or the dashboard.
func Login(authSvc service.AuthService, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if middleware.SessionUserID(store, c) != "" {
			return c.Redirect("/dashboard", fiber.StatusFound)
		}

		email := strings.TrimSpace(c.FormValue("email"))
		password := c.FormValue("password")
		if email == "" || password == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "email and password are required")
		}

		u, err := authSvc.Login(c.UserContext(), email, password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidCredentials):
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			case errors.Is(err, service.ErrNotVerified):
				return writeError(c, fiber.StatusForbidden, "NOT_VERIFIED", "account is not verified yet")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		sess, err := store.Get(c)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		sess.Set(middleware.UserIDSessionKey, u.ID)
		if err := sess.Save(); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		next := c.Query("next")
		if next == "" || !strings.HasPrefix(next, "/") {
			next = "/dashboard"
		}
		return c.Redirect(next, fiber.StatusFound)
	}
}

// Logout invalidates the current session and redirects to the landing page.
func Logout(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err == nil {
			_ = sess.Destroy()
		}
		return c.Redirect("/", fiber.StatusFound)
	}
}

// DeleteAccount removes the current user's account, its notes, and (best
// effort) their blobs, then ends the session.
func DeleteAccount(authSvc service.AuthService, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := middleware.CurrentUserID(c)
		if err := authSvc.DeleteAccount(c.UserContext(), uid); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if sess, err := store.Get(c); err == nil {
			_ = sess.Destroy()
		}
		return c.Redirect("/", fiber.StatusFound)
	}
}
