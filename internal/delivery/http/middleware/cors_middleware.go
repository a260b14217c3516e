package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func (m *Middleware) CorsMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  m.configString("api.cors.origins", "*"),
		AllowMethods:  "GET, POST, OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Content-Length, Accept-Encoding, " + RequestIDHeader,
		ExposeHeaders: "Content-Length, Content-Type, " + RequestIDHeader,
		MaxAge:        600,
	})
}
