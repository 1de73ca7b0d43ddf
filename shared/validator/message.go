package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"gt":       "{field} must be greater than {param}",
		"unique":   "{field} must not contain duplicates",
		"date":     "{field} must be a valid date in format YYYY-MM-DD",
		"month":    "{field} must be a valid month in format YYYY-MM",
		"year":     "{field} must be a valid year in format YYYY",
		"nefield":  "{field} must differ from {param}",
	}
)

// message renders the first failed rule that has a template, falling back to the raw error.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
	}

	return fieldErrors.Error()
}
