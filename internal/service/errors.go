package service

import (
	"errors"
	"strings"
)

// Error taxonomy. Handlers map these to HTTP statuses; anything else is internal.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrUpstream           = errors.New("upstream unavailable")
	ErrInternal           = errors.New("internal error")
)

// ValidationError lists the request fields that are missing or unusable.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// Is makes errors.Is(err, ErrValidation) true for every *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// fieldChecker collects the names of failed checks in declaration order.
type fieldChecker struct {
	fields []string
}

func (c *fieldChecker) require(name string, ok bool) {
	if !ok {
		c.fields = append(c.fields, name)
	}
}

func (c *fieldChecker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
