package handlers

import (
	"regexp"

	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

const minPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
)

// fieldErrors accumulates per-field validation failures into the details
// section of a 400 response.
type fieldErrors map[string]any

func (f fieldErrors) add(field, message string) {
	f[field] = message
}

func (f fieldErrors) toError() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError("validation failed", f)
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
