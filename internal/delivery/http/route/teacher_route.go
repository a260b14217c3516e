package route

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/handler"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupTeacherRoute(api fiber.Router, handler handler.TeacherHandler, m *middleware.Middleware) {
	api.Get("/teachers", handler.List)

	router := api.Group("/teacher")
	{
		router.Get("/students", handler.Students)
		router.Get("/students/:id/analytics", handler.StudentAnalytics)
		router.Post("/students/:id/alert", handler.Alert)
		router.Get("/insights", handler.Insights)
	}
}
