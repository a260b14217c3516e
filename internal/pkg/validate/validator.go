package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

// Languages the tutor can answer in, used by the `language` tag.
var Languages = []string{"en", "hi", "ta", "te"}

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() *Validator {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// Registering english translator
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validator, trans)
	registerLanguage(validator, trans)

	// Registering field name translation
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate: validator,
		trans:    trans,
	}
}

// ParseAndValidate decodes the request body into req and runs its validate tags.
// Field failures come back as *FieldsError keyed by json name.
func (v *Validator) ParseAndValidate(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Request body is not valid")
	}

	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	errors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Request body is not valid")
	}

	fields := v.translateError(errors)
	return NewFieldsError(fields)
}

// Struct validates an already decoded value.
func (v *Validator) Struct(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	errors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	return NewFieldsError(v.translateError(errors))
}

func (v *Validator) translateError(errs validator.ValidationErrors) (fields map[string]string) {
	fields = make(map[string]string)
	for _, e := range errs {
		fields[e.Field()] = e.Translate(v.trans)
	}
	return fields
}

func registerLanguage(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		lang := fl.Field().String()
		for _, l := range Languages {
			if l == lang {
				return true
			}
		}
		return false
	})

	_ = v.RegisterTranslation("language", trans, func(t ut.Translator) error {
		return t.Add("language", "{0} must be one of ["+strings.Join(Languages, " ")+"]", true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, _ := t.T("language", fe.Field())
		return msg
	})
}
