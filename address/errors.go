package address

import (
	"fmt"
	"strings"
)

// Issue describes one rejected input value. Loc names where the value came
// from, e.g. ["query", "phone"] or ["body", "city"].
type Issue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Issue types
const (
	IssueMissing     = "missing"
	IssueStringType  = "string_type"
	IssueJSONInvalid = "json_invalid"
	IssueModelType   = "model_type"
	IssuePhoneNumber = "value_error"
)

// ValidationError is returned when client input is malformed. No store access
// happens once it is raised.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(issue.Loc, "."), issue.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewPhoneValidationError reports an unusable phone query parameter
func NewPhoneValidationError(cause error) *ValidationError {
	msg := "value is not a valid phone number"
	if cause != nil {
		msg = cause.Error()
	}
	return &ValidationError{Issues: []Issue{{
		Loc:  []string{"query", "phone"},
		Msg:  msg,
		Type: IssuePhoneNumber,
	}}}
}

// ConflictError is returned by Create when a record already exists for Phone
type ConflictError struct {
	Phone string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Извините, ваш телефон (%s) уже в базе данных.", e.Phone)
}

// NotFoundError is returned by Read, Update and Delete when no record exists for Phone
type NotFoundError struct {
	Phone string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Извините, ваш телефон (%s) не найден.", e.Phone)
}

// StoreError wraps a failure of the underlying store
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
