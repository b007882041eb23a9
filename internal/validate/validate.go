// Package validate holds form validation helpers shared by the customer
// intake flows.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return FieldError{Field: field, Message: field + " is required"}
	}
	return nil
}

func Email(field, value string) error {
	if _, err := mail.ParseAddress(value); err != nil {
		return FieldError{Field: field, Message: "invalid email address"}
	}
	return nil
}
