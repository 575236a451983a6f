package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrLoad         = errors.New("load failed")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "reference", "config", "directory"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// LoadError indicates a data file exists but could not be read or parsed.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Cause)
}

// Is lets errors.Is match both ErrLoad and the wrapped cause.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Helper constructors for common cases

func ReferenceNotFound(path string) error {
	return &NotFoundError{Resource: "reference table", ID: path}
}

func EntryNotFound(id string) error {
	return &NotFoundError{Resource: "reference entry", ID: id}
}

func InvalidHex(value string) error {
	return &ValidationError{Field: "hex colour", Message: fmt.Sprintf("%q is not a 6-digit hex colour", value)}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func LoadFailed(path string, cause error) error {
	return &LoadError{Path: path, Cause: cause}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsLoadError checks if an error is a load error.
func IsLoadError(err error) bool {
	return errors.Is(err, ErrLoad)
}
