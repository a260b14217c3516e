package config

import (
	"errors"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/middleware"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func NewAPI(config *viper.Viper, log *logrus.Logger) *fiber.App {
	api := fiber.New(fiber.Config{
		AppName:      config.GetString("app.name"),
		ErrorHandler: ErrorHandler(log),
		Prefork:      config.GetBool("api.prefork"),
		BodyLimit:    config.GetInt("api.body_limit"),
		ReadTimeout:  config.GetDuration("api.read_timeout"),
		WriteTimeout: config.GetDuration("api.write_timeout"),
	})
	return api
}

// ErrorHandler renders errors that escape the handlers (unknown routes,
// recovered panics) in the same envelope as handled ones.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"path":       ctx.Path(),
				"request_id": middleware.RequestID(ctx),
			}).Error("unhandled error")
			return response.NewInternalServerError().Send(ctx)
		}

		return response.NewFailed(err.Error(), fiber.NewError(code, ""), log).Send(ctx)
	}
}
