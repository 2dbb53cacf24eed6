package middleware

import (
    "encoding/json"
    "io"
    "os"
    "time"

    "github.com/gofiber/fiber/v2"
)

// Logger is a middleware that logs each HTTP request in JSON format.
// Required fields:
// - ts (RFC3339Nano, local time)
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// When the request carries an authenticated session, user_id is included too.
func Logger() fiber.Handler {
    return LoggerWithWriter(os.Stdout, time.Local)
}

// LoggerWithWriter is Logger with the output writer and timestamp location
// injectable.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
    // Prepare a JSON encoder that writes one JSON object per line.
    enc := json.NewEncoder(w)

    return func(c *fiber.Ctx) error {
        start := time.Now()

        // Process request
        err := c.Next()

        // Collect fields after handler executed to capture final status
        rid, _ := c.Locals(RequestIDLocalKey).(string)
        method := c.Method()
        // Path segment only; query strings can carry search terms we do not log
        path := c.Path()
        status := c.Response().StatusCode()
        latency := float64(time.Since(start).Milliseconds())

        entry := map[string]any{
            "ts":         time.Now().In(loc).Format(time.RFC3339Nano),
            "request_id": rid,
            "method":     method,
            "path":       path,
            "status":     status,
            "latency":    latency,
        }
        if uid, ok := c.Locals(UserIDLocalKey).(string); ok && uid != "" {
            entry["user_id"] = uid
        }
        _ = enc.Encode(entry)

        return err
    }
}
