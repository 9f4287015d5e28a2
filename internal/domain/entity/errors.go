package entity

import "errors"

var (
	ErrInvalidGender           = errors.New("invalid gender, use MALE, FEMALE or OTHER")
	ErrIdentityAlreadyAssigned = errors.New("identity already assigned")
)

// MissingFieldError reports a required field that is absent or blank.
// Field holds the transport name of the field (e.g. "firstName").
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}
