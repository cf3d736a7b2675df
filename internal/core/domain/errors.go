package domain

import (
	"errors"
	"sort"
	"strings"
)

// Account and access errors.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("this email is already registered")
	ErrUsernameConflict   = errors.New("could not allocate a unique username")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrDenied             = errors.New("access forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrAccountNotFound    = errors.New("account not found")
	ErrSessionNotFound    = errors.New("session not found")
)

// Society record errors.
var (
	ErrUnitNotFound       = errors.New("unit not found")
	ErrDuplicateUnit      = errors.New("unit number already exists")
	ErrResidentNotFound   = errors.New("resident not found")
	ErrResidentExists     = errors.New("account already has a resident profile")
	ErrBillNotFound       = errors.New("bill not found")
	ErrDuplicateBill      = errors.New("bill already exists for this unit and month")
	ErrBillAlreadyPaid    = errors.New("bill already paid")
	ErrDuplicateReference = errors.New("transaction reference already exists")
	ErrVisitorNotFound    = errors.New("visitor not found")
	ErrVisitorAlreadyOut  = errors.New("visitor already checked out")
	ErrComplaintNotFound  = errors.New("complaint not found")
	ErrAmenityNotFound    = errors.New("amenity not found")
	ErrAmenityUnavailable = errors.New("amenity is not available")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingConflict    = errors.New("amenity already booked for this time")
	ErrNoticeNotFound     = errors.New("notice not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// ValidationError collects field-level messages for a rejected input.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records msg against field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// OrNil returns e when at least one field failed, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FieldError is shorthand for a ValidationError on a single field.
func FieldError(field, msg string) *ValidationError {
	e := NewValidationError()
	e.Add(field, msg)
	return e
}
