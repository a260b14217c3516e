package route

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/handler"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/middleware"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api             *fiber.App
	Middleware      *middleware.Middleware
	StudentHandler  handler.StudentHandler
	QuestionHandler handler.QuestionHandler
	TeacherHandler  handler.TeacherHandler
	// AccessLog disables the fiber access log when false (tests).
	AccessLog bool
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(c.Middleware.RequestIDMiddleware())
	if c.AccessLog {
		c.Api.Use(logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency} ${respHeader:X-Request-ID}\n",
		}))
	}
	c.Api.Use(c.Middleware.CorsMiddleware())

	c.Api.Get("/healthz", func(ctx *fiber.Ctx) error {
		return response.NewSuccess("ok", nil, nil).Send(ctx)
	})

	api := c.Api.Group("/api")
	SetupStudentRoute(api, c.StudentHandler, c.Middleware)
	SetupQuestionRoute(api, c.QuestionHandler, c.Middleware)
	SetupTeacherRoute(api, c.TeacherHandler, c.Middleware)
}
