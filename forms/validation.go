// Package forms validates browser form submissions before they are
// forwarded to the backend. Validation is pure and performs no I/O; errors
// are rendered back inline on the submitting page.
package forms

import (
	"fmt"
	"strings"
)

const (
	minPasswordLength = 8
	maxMessageLength  = 4000
	maxNameLength     = 120
)

// Validator provides centralized validation for the login, signup, contact
// and book-request forms.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateLogin validates the login form fields.
func (v *Validator) ValidateLogin(email, password string) error {
	if err := v.validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ValidateSignup validates the signup form fields.
func (v *Validator) ValidateSignup(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	if err := v.validateEmail(email); err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// ValidateContact validates the contact form fields.
func (v *Validator) ValidateContact(name, email, message string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := v.validateEmail(email); err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message is required")
	}
	if len(message) > maxMessageLength {
		return fmt.Errorf("message must be at most %d characters", maxMessageLength)
	}
	return nil
}

// ValidateBookRequest validates the book-generation form fields.
func (v *Validator) ValidateBookRequest(petName, theme string) error {
	if strings.TrimSpace(petName) == "" {
		return fmt.Errorf("pet name is required")
	}
	if strings.TrimSpace(theme) == "" {
		return fmt.Errorf("theme is required")
	}
	return nil
}

// ValidateReminder validates the reminder-creation form fields.
func (v *Validator) ValidateReminder(title, dueAt string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(dueAt) == "" {
		return fmt.Errorf("due date is required")
	}
	return nil
}

func (v *Validator) validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("invalid email format")
	}
	return nil
}
