package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/userinfo-validator/internal/types"
)

// describe turns a rejected field into a human-readable sentence for logs.
func describe(field types.FieldName, fe validator.FieldError) string {
	if fe == nil {
		return fmt.Sprintf("field %s is invalid", field)
	}

	switch fe.ActualTag() {
	case "telephone":
		return fmt.Sprintf("field %s must look like +7-(DDD)-DDD-DD-DD, got %q", field, fe.Value())
	case "height":
		return fmt.Sprintf("field %s must look like D.DD with D in 0-2, got %q", field, fe.Value())
	case "snils":
		return fmt.Sprintf("field %s must be 11 digits, got %q", field, fe.Value())
	case "passport_series":
		return fmt.Sprintf("field %s must be two digit pairs separated by whitespace, got %q", field, fe.Value())
	case "age":
		return fmt.Sprintf("field %s must be an integer in [14, 100), got %q", field, fe.Value())
	default:
		return fmt.Sprintf("field %s is invalid: %q", field, fe.Value())
	}
}
