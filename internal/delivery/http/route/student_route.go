package route

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/handler"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoute(api fiber.Router, handler handler.StudentHandler, m *middleware.Middleware) {
	router := api.Group("/students")
	{
		router.Get("/", handler.List)
		router.Post("/", handler.Create)
		router.Get("/:id", handler.Get)
		router.Get("/:id/progress", handler.Progress)
		router.Get("/:id/achievements", handler.Achievements)
		router.Get("/:id/performance", handler.Performance)
		router.Get("/:id/analysis", handler.Analysis)
		router.Get("/:id/learning-path", handler.LearningPath)
		router.Get("/:id/coaching", handler.Coaching)
		router.Get("/:id/recommended-questions", handler.RecommendedQuestions)
	}
}
