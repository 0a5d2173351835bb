// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/deppfellow/galeria-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that calls validation.Struct(req)
type Validatable interface {
	Validate() error
}

// FieldMessages is optionally implemented by request types that want their own
// client-facing messages. Keys are "<json field>.<tag>" or just "<json field>".
type FieldMessages interface {
	FieldMessages() map[string]string
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "falha na validação"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors are the json
// (or param) names so messages match what clients send.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "param"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return Validator().Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. Path params (`param` tags) then the JSON body are bound into payload.
//  2. payload.Validate() applies validation rules.
//  3. Returns *errs.HTTPError (400) with field-level errors if validation fails.
func BindAndValidate(c echo.Context, payload Validatable) error {
	binder := &echo.DefaultBinder{}

	if err := binder.BindPathParams(c, payload); err != nil {
		return paramError(c)
	}

	if err := binder.BindBody(c, payload); err != nil {
		return errs.NewBadRequestError("Corpo da requisição inválido", nil, nil)
	}

	if err := payload.Validate(); err != nil {
		fieldErrors := extractValidationError(payload, err)
		message := "Falha na validação"
		if len(fieldErrors) > 0 {
			message = fieldErrors[0].Error
		}
		return errs.NewBadRequestError(message, nil, fieldErrors)
	}

	return nil
}

// paramError reports a path parameter that could not be decoded, e.g. /imagens/abc.
func paramError(c echo.Context) error {
	names := c.ParamNames()
	if len(names) != 1 {
		return errs.NewBadRequestError("Parâmetros de rota inválidos", nil, nil)
	}

	message := fmt.Sprintf("O parâmetro %s é inválido", names[0])
	return errs.NewBadRequestError(message, nil, []errs.FieldError{{
		Field: names[0],
		Error: message,
	}})
}

func extractValidationError(payload any, err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	var overrides map[string]string
	if fm, ok := payload.(FieldMessages); ok {
		overrides = fm.FieldMessages()
	}

	for _, fe := range validationErrors {
		field := fe.Field()
		msg, ok := overrides[field+"."+fe.Tag()]
		if !ok {
			msg, ok = overrides[field]
		}
		if !ok {
			msg = defaultMessage(fe)
		}

		fieldErrors = append(fieldErrors, errs.FieldError{Field: field, Error: msg})
	}

	return fieldErrors
}

func defaultMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório", field)

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("O campo %s deve ter pelo menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("O campo %s deve ser no mínimo %s", field, fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("O campo %s deve ter no máximo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("O campo %s deve ser no máximo %s", field, fe.Param())

	case "email":
		return fmt.Sprintf("O campo %s deve ser um email válido", field)

	case "url", "http_url":
		return fmt.Sprintf("O campo %s deve ser uma URL válida", field)

	case "oneof":
		return fmt.Sprintf("O campo %s deve ser um dos valores: %s", field, fe.Param())

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("O campo %s é inválido (%s=%s)", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("O campo %s é inválido (%s)", field, fe.Tag())
	}
}
