package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestIDMiddleware tags every request with an id (taken from the incoming
// header when present) and logs failed requests with it.
func (m *Middleware) RequestIDMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx.Locals(requestIDKey, id)
		ctx.Set(RequestIDHeader, id)

		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err == nil && status < fiber.StatusInternalServerError {
			return nil
		}
		if entry := m.entry(ctx); entry != nil {
			entry = entry.WithFields(logrus.Fields{
				"method":     ctx.Method(),
				"path":       ctx.Path(),
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
			})
			if err != nil {
				entry = entry.WithError(err)
			}
			entry.Error("request failed")
		}
		return err
	}
}

// RequestID returns the id assigned by RequestIDMiddleware.
func RequestID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(requestIDKey).(string)
	return id
}
