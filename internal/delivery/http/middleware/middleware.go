package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type MiddlewareConfig struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

// Middleware holds what the request middlewares share. A nil *Middleware
// is usable and falls back to defaults without logging.
type Middleware struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

func NewMiddleware(c *MiddlewareConfig) *Middleware {
	if c == nil {
		return &Middleware{}
	}

	return &Middleware{
		Log:    c.Log,
		Config: c.Config,
	}
}

func (m *Middleware) configString(key string, def string) string {
	if m == nil || m.Config == nil {
		return def
	}
	if v := m.Config.GetString(key); v != "" {
		return v
	}
	return def
}

// entry returns a log entry tagged with the request id, or nil when logging is off.
func (m *Middleware) entry(ctx *fiber.Ctx) *logrus.Entry {
	if m == nil || m.Log == nil {
		return nil
	}
	return m.Log.WithField("request_id", RequestID(ctx))
}
