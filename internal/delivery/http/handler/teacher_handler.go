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
	TeacherHandler interface {
		List(ctx *fiber.Ctx) error
		Students(ctx *fiber.Ctx) error
		StudentAnalytics(ctx *fiber.Ctx) error
		Insights(ctx *fiber.Ctx) error
		Alert(ctx *fiber.Ctx) error
	}

	teacherHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.TeacherUsecase
	}
)

func NewTeacherHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.TeacherUsecase) TeacherHandler {
	return &teacherHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// GET /api/teachers
func (h *teacherHandler) List(ctx *fiber.Ctx) error {
	teachers, err := h.usecase.ListTeachers(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.TEACHER_LIST_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEACHER_LIST_SUCCESS, teachers, nil).Send(ctx)
}

// GET /api/teacher/students
func (h *teacherHandler) Students(ctx *fiber.Ctx) error {
	students, err := h.usecase.StudentsOverview(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.TEACHER_STUDENTS_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEACHER_STUDENTS_SUCCESS, students, fiber.Map{"total": len(students)}).Send(ctx)
}

// GET /api/teacher/students/:id/analytics
func (h *teacherHandler) StudentAnalytics(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.TEACHER_STUDENT_ANALYTICS_FAILED, err, h.logger).Send(ctx)
	}

	analytics, err := h.usecase.StudentAnalytics(ctx.UserContext(), id)
	if err != nil {
		return response.NewFailed(domain.TEACHER_STUDENT_ANALYTICS_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEACHER_STUDENT_ANALYTICS_SUCCESS, analytics, nil).Send(ctx)
}

// GET /api/teacher/insights
func (h *teacherHandler) Insights(ctx *fiber.Ctx) error {
	insights, err := h.usecase.ClassInsights(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.TEACHER_INSIGHTS_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEACHER_INSIGHTS_SUCCESS, insights, nil).Send(ctx)
}

// POST /api/teacher/students/:id/alert
func (h *teacherHandler) Alert(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return response.NewFailed(domain.TEACHER_ALERT_FAILED, err, h.logger).Send(ctx)
	}

	var req entity.TeacherAlertRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TEACHER_ALERT_FAILED, err, h.logger).Send(ctx)
	}

	alert, err := h.usecase.Alert(ctx.UserContext(), id, req)
	if err != nil {
		return response.NewFailed(domain.TEACHER_ALERT_FAILED, toHTTPError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEACHER_ALERT_SUCCESS, alert, nil).Send(ctx)
}
