package onboarding

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeUserExists     = "user_exists"
	TextCodeValidation     = "validation_error"
	TextCodeStore          = "store_error"
	TextCodeInvalidPayload = "invalid_payload"
)

// ErrUserExists is returned when an account with the email already exists.
var ErrUserExists = errors.New("User with this email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(errors.CodeConflict)

// ErrorCode extracts the wire error code for a provisioning failure. Errors
// without a text code surface as a generic store error.
func ErrorCode(err error) string {
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode != "" {
		return richErr.TextCode
	}
	return TextCodeStore
}

// ErrorMessage extracts the human readable message for a failure.
func ErrorMessage(err error) string {
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}
	return err.Error()
}
