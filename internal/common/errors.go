// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by storage when a row does not exist.
	ErrNotFound = errors.New("not found")

	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError pairs an underlying error with the message the CLI prints.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.UserMessage
	}
	return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError wraps err with a message meant for the person at the terminal.
func NewUserError(userMessage string, err error) error {
	return &UserError{UserMessage: userMessage, Err: err}
}
