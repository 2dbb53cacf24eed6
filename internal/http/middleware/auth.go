package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	// UserIDSessionKey is the session key under which the authenticated
	// user's id is stored at login.
	UserIDSessionKey = "user_id"
	// UserIDLocalKey is the key used to store the resolved user id in
	// Fiber's context locals for downstream handlers.
	UserIDLocalKey = "current_user_id"
)

// RequireAuth is a route guard: it resolves the request's session to a user
// id before handler logic runs. Without a valid session the client is
// redirected to the login page with the originally requested path preserved
// in the next parameter, so login can send them back.
func RequireAuth(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := SessionUserID(store, c)
		if uid == "" {
			return c.Redirect("/login?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
		}
		c.Locals(UserIDLocalKey, uid)
		return c.Next()
	}
}

// SessionUserID returns the user id bound to the request's session, or ""
// when the request carries no valid session.
func SessionUserID(store *session.Store, c *fiber.Ctx) string {
	sess, err := store.Get(c)
	if err != nil {
		return ""
	}
	uid, _ := sess.Get(UserIDSessionKey).(string)
	return uid
}

// CurrentUserID extracts the user id stored by RequireAuth.
func CurrentUserID(c *fiber.Ctx) string {
	if v := c.Locals(UserIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
