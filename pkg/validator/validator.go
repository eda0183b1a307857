package validator

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ParseError turns a binding error into field -> message pairs.
func ParseError(err error) map[string]string {
	fields := make(map[string]string)

	var ve validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &ve):
		for _, fe := range ve {
			fields[fe.Field()] = fieldMessage(fe)
		}
	case errors.As(err, &typeErr):
		fields[typeErr.Field] = fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)
	case errors.As(err, &syntaxErr):
		fields["body"] = "malformed JSON"
	case err != nil:
		fields["error"] = err.Error()
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", fe.Field())
	case "max":
		return fmt.Sprintf("'%s' must be at most %s characters", fe.Field(), fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("'%s' must be %s %s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
}
