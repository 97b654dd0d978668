package service

import (
	"errors"
	"strings"
)

var (
	ErrTemplateNotFound    = errors.New("Template not found")
	ErrEventNotFound       = errors.New("Event not found")
	ErrFormNotFound        = errors.New("Form not found")
	ErrUserNotFound        = errors.New("User not found")
	ErrInvalidStatus       = errors.New("invalid form status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrFormNotActive       = errors.New("form is not accepting responses")
	ErrAnonymousNotAllowed = errors.New("anonymous responses are not allowed for this form")
)

// StructureError carries the validator output for a rejected structure.
type StructureError struct {
	Result ValidationResult
}

func (e *StructureError) Error() string {
	return "invalid form structure: " + strings.Join(e.Result.Errors, "; ")
}

// AnswerError lists every problem found in a submitted answer set.
type AnswerError struct {
	Problems []string
}

func (e *AnswerError) Error() string {
	return "invalid answers: " + strings.Join(e.Problems, "; ")
}
