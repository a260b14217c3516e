package handler

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/domain"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/usecase"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/response"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	StudentHandler interface {
		List(ctx *fiber.Ctx) error
		Get(ctx *fiber.Ctx) error
		Create(ctx *fiber.Ctx) error
		Progress(ctx *fiber.Ctx) error
		Achievements(ctx *fiber.Ctx) error
		Performance(ctx *fiber.Ctx) error
		Analysis(ctx *fiber.Ctx) error
		LearningPath(ctx *fiber.Ctx) error
		Coaching(ctx *fiber.Ctx) error
		RecommendedQuestions(ctx *fiber.Ctx) error
	}

	studentHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.StudentUsecase
	}
)

func NewStudentHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.StudentUsecase) StudentHandler {
	return &studentHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// GET /api/students
func (h *studentHandler) List(ctx *fiber.Ctx) error {
	students, err := h.usecase.List(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.STUDENT_LIST_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDENT_LIST_SUCCESS, students, nil).Send(ctx)
}

// GET /api/students/:id
func (h *studentHandler) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.STUDENT_GET_FAILED, err, h.logger).Send(ctx)
	}

	student, err := h.usecase.Get(ctx.UserContext(), id)
	if err != nil {
		return response.NewFailed(domain.STUDENT_GET_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDENT_GET_SUCCESS, student, nil).Send(ctx)
}

// POST /api/students
func (h *studentHandler) Create(ctx *fiber.Ctx) error {
	var req entity.CreateStudentRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.STUDENT_CREATE_FAILED, err, h.logger).Send(ctx)
	}

	student, err := h.usecase.Create(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.STUDENT_CREATE_FAILED, err, h.logger).Send(ctx)
	}

	res := response.NewSuccess(domain.STUDENT_CREATE_SUCCESS, student, nil)
	res.StatusCode = fiber.StatusCreated
	return res.Send(ctx)
}

// GET /api/students/:id/progress
func (h *studentHandler) Progress(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.STUDENT_PROGRESS_FAILED, err, h.logger).Send(ctx)
	}

	progress, err := h.usecase.Progress(ctx.UserContext(), id)
	if err != nil {
		return response.NewFailed(domain.STUDENT_PROGRESS_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDENT_PROGRESS_SUCCESS, progress, nil).Send(ctx)
}

// GET /api/students/:id/achievements
func (h *studentHandler) Achievements(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.STUDENT_ACHIEVEMENTS_FAILED, err, h.logger).Send(ctx)
	}

	achievements, err := h.usecase.Achievements(ctx.UserContext(), id)
	if err != nil {
		return response.NewFailed(domain.STUDENT_ACHIEVEMENTS_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDENT_ACHIEVEMENTS_SUCCESS, achievements, nil).Send(ctx)
}

// GET /api/students/:id/performance
func (h *studentHandler) Performance(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.STUDENT_PERFORMANCE_FAILED, err, h.logger).Send(ctx)
	}

	performance, err := h.usecase.Performance(ctx.UserContext(), id)
	if err != nil {
		return response.NewFailed(domain.STUDENT_PERFORMANCE_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDENT_PERFORMANCE_SUCCESS, performance, nil).Send(ctx)
}

// GET /api/students/:id/analysis
func (h *studentHandler) Analysis(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.STUDENT_ANALYSIS_FAILED, err, h.logger).Send(ctx)
	}

	analysis, err := h.usecase.Analysis(ctx.UserContext(), id)
	if err != nil {
		return response.NewFailed(domain.STUDENT_ANALYSIS_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDENT_ANALYSIS_SUCCESS, analysis, nil).Send(ctx)
}

// GET /api/students/:id/learning-path
func (h *studentHandler) LearningPath(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.STUDENT_LEARNING_PATH_FAILED, err, h.logger).Send(ctx)
	}

	path, err := h.usecase.LearningPath(ctx.UserContext(), id)
	if err != nil {
		return response.NewFailed(domain.STUDENT_LEARNING_PATH_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDENT_LEARNING_PATH_SUCCESS, path, nil).Send(ctx)
}

// GET /api/students/:id/coaching?questionId=3&language=hi
func (h *studentHandler) Coaching(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.STUDENT_COACHING_FAILED, err, h.logger).Send(ctx)
	}

	questionID := ctx.QueryInt("questionId", 0)
	if questionID < 0 {
		return response.NewFailed(domain.STUDENT_COACHING_FAILED, fiber.NewError(fiber.StatusBadRequest, "questionId must not be negative"), h.logger).Send(ctx)
	}

	coaching, err := h.usecase.Coaching(ctx.UserContext(), id, uint(questionID), ctx.Query("language"))
	if err != nil {
		return response.NewFailed(domain.STUDENT_COACHING_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDENT_COACHING_SUCCESS, coaching, nil).Send(ctx)
}

// GET /api/students/:id/recommended-questions
func (h *studentHandler) RecommendedQuestions(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.STUDENT_RECOMMENDED_QUESTIONS_FAILED, err, h.logger).Send(ctx)
	}

	questions, err := h.usecase.RecommendedQuestions(ctx.UserContext(), id)
	if err != nil {
		return response.NewFailed(domain.STUDENT_RECOMMENDED_QUESTIONS_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDENT_RECOMMENDED_QUESTIONS_SUCCESS, questions, nil).Send(ctx)
}
