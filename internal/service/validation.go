package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

var validate = newValidator()

type enumValue interface {
	Valid() bool
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumValue)
		return ok && e.Valid()
	})
	return v
}

// validateStruct runs the struct tags and converts failures into a
// validation DomainError keyed by JSON field name.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("validation failed", map[string]any{"error": err.Error()})
	}
	details := map[string]any{}
	for _, fe := range errs {
		details[fe.Field()] = validationMessage(fe)
	}
	return apperrors.NewValidationError("validation failed", details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when the ticket is resolved"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "enum":
		return fmt.Sprintf("%v is not an accepted value", fe.Value())
	}
	return "is invalid"
}
