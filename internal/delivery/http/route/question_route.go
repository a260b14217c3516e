package route

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/handler"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupQuestionRoute(api fiber.Router, handler handler.QuestionHandler, m *middleware.Middleware) {
	router := api.Group("/questions")
	{
		router.Get("/", handler.List)
		router.Post("/generate", handler.Generate)
	}

	api.Post("/answers", handler.SubmitAnswer)
	api.Post("/hints", handler.Hint)
}
