package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type normalizer interface {
	normalize()
}

// decode reads a JSON body into T, trims it when T knows how, and validates
// it. All validation failures are reported in a single message.
func decode[T any](r *http.Request) (T, error) {
	var req T

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, badRequest("Could not read the request body.")
	}

	if n, ok := any(&req).(normalizer); ok {
		n.normalize()
	}

	if err := validate.Struct(req); err != nil {
		return req, badRequest(validationMessage(err))
	}

	return req, nil
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	return strings.Join(lo.Map(errs, func(fe validator.FieldError, _ int) string {
		return fieldMessage(fe)
	}), " ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email.", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID.", field)
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}
