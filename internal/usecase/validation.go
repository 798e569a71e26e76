package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateProcessEmailInput(input ProcessEmailInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.EmailBody) == "" {
		errors = append(errors, ValidationError{"email_body", "is required"})
	}
	if strings.TrimSpace(input.FromEmail) == "" {
		errors = append(errors, ValidationError{"from_email", "is required"})
	}

	return errors
}
