package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// Envelope is the uniform response shape; callers branch on Success and
// display Message on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Collection wraps list payloads.
type Collection struct {
	Data  any `json:"data"`
	Total int `json:"total"`
}

// OK builds a success envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKList builds a success envelope around a collection.
func OKList(items any, total int) Envelope {
	return Envelope{Success: true, Data: Collection{Data: items, Total: total}}
}

var validate = validator.New()

// Validate runs struct-tag validation and converts failures into a
// ValidationError carrying the offending fields.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	details := map[string]any{}
	if ok := AsValidationErrors(err, &verrs); ok {
		for _, fe := range verrs {
			details[fe.Field()] = fmt.Sprintf("failed %q", fe.Tag())
		}
	}
	return apperrors.NewValidationError("invalid payload", details)
}

// AsValidationErrors unwraps validator.ValidationErrors.
func AsValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = verrs
	return true
}
