package handler

import (
	"errors"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/domain"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/usecase"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
)

// toHTTPError maps usecase errors onto fiber errors. Unknown errors pass
// through untouched and end up as 500.
func toHTTPError(err error) error {
	var fields *validate.FieldsError
	switch {
	case errors.As(err, &fields):
		return fields
	case errors.Is(err, usecase.ErrStudentNotFound), errors.Is(err, usecase.ErrQuestionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrInvalidTopic):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

func paramID(ctx *fiber.Ctx, key string) (uint, error) {
	id, err := ctx.ParamsInt(key)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, domain.INVALID_ID)
	}
	return uint(id), nil
}
