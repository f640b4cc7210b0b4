package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrGenerationFailed = errors.New("generation failed")
)

// ValidationError describes user input that was rejected before any model call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

type GenerationErrorKind string

const (
	GenerationErrorNetwork   GenerationErrorKind = "network"
	GenerationErrorAuth      GenerationErrorKind = "auth"
	GenerationErrorQuota     GenerationErrorKind = "quota"
	GenerationErrorMalformed GenerationErrorKind = "malformed_response"
	GenerationErrorUpstream  GenerationErrorKind = "upstream"
)

// GenerationError is the single failure condition of the model gateway. Kind narrows it down
// for the user-facing message; Cause keeps the original error.
type GenerationError struct {
	Kind  GenerationErrorKind
	Cause error
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("generation failed (%s)", e.Kind)
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// UserMessage is the text shown in the UI for this failure.
func (e *GenerationError) UserMessage() string {
	switch e.Kind {
	case GenerationErrorNetwork:
		return "❌ Could not reach the model service. Please try again."
	case GenerationErrorAuth:
		return "❌ The model service rejected the API key."
	case GenerationErrorQuota:
		return "❌ The model service quota is exhausted or the request was rate limited. Please try again later."
	case GenerationErrorMalformed:
		return "❌ The model service returned an empty or unreadable response."
	default:
		return "❌ The model service failed to generate a response."
	}
}
