package handler

import (
	"strings"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/domain"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/usecase"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/response"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	QuestionHandler interface {
		List(ctx *fiber.Ctx) error
		Generate(ctx *fiber.Ctx) error
		SubmitAnswer(ctx *fiber.Ctx) error
		Hint(ctx *fiber.Ctx) error
	}

	questionHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.QuestionUsecase
	}
)

func NewQuestionHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.QuestionUsecase) QuestionHandler {
	return &questionHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// GET /api/questions?topic=addition&difficulty=1&count=5
func (h *questionHandler) List(ctx *fiber.Ctx) error {
	topic := strings.ToLower(strings.TrimSpace(ctx.Query("topic")))
	difficulty := ctx.QueryInt("difficulty", entity.MinDifficulty)
	count := ctx.QueryInt("count", usecase.DefaultQuestionCount)

	questions, err := h.usecase.List(ctx.UserContext(), topic, difficulty, count)
	if err != nil {
		return response.NewFailed(domain.QUESTION_LIST_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.QUESTION_LIST_SUCCESS, questions, nil).Send(ctx)
}

// POST /api/questions/generate
func (h *questionHandler) Generate(ctx *fiber.Ctx) error {
	var req entity.GenerateQuestionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUESTION_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	question, err := h.usecase.Generate(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.QUESTION_GENERATE_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.QUESTION_GENERATE_SUCCESS, question, nil).Send(ctx)
}

// POST /api/answers
func (h *questionHandler) SubmitAnswer(ctx *fiber.Ctx) error {
	var req entity.SubmitAnswerRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.ANSWER_SUBMIT_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.SubmitAnswer(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.ANSWER_SUBMIT_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.ANSWER_SUBMIT_SUCCESS, result, nil).Send(ctx)
}

// POST /api/hints
func (h *questionHandler) Hint(ctx *fiber.Ctx) error {
	var req entity.HintRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.HINT_FAILED, err, h.logger).Send(ctx)
	}

	hint, err := h.usecase.Hint(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.HINT_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.HINT_SUCCESS, hint, nil).Send(ctx)
}
