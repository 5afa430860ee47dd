package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

// Validator wraps the go-playground validator and renders failures in the wording clients
// of this API already match on.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: validate}
}

// Struct validates v. model names the record in the message, e.g. "Blog validation failed: ...".
// The returned error is a validation Failure carrying one Violation per failed rule.
func (v *Validator) Struct(model string, s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	parts := make([]string, 0, len(verrs))
	violations := make([]apperrors.Violation, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
		violations = append(violations, apperrors.Violation{Field: fe.Field(), Rule: fe.Tag()})
	}

	message := fmt.Sprintf("%s validation failed: %s", model, strings.Join(parts, ", "))
	return apperrors.NewValidationError(message, violations)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Path `%s` is required.", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Path `%s` (`%v`) is shorter than the minimum allowed length (%s).", field, fe.Value(), fe.Param())
		}
		return fmt.Sprintf("Path `%s` (%v) is less than minimum allowed value (%s).", field, fe.Value(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Path `%s` (`%v`) is longer than the maximum allowed length (%s).", field, fe.Value(), fe.Param())
		}
		return fmt.Sprintf("Path `%s` (%v) is more than maximum allowed value (%s).", field, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("Validator failed for path `%s` with value `%v`", field, fe.Value())
	}
}
