package study

import "errors"

// Generation failure categories. Every *GenerationError matches exactly one
// of them with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrEmptyResponse = errors.New("empty response")
	ErrService       = errors.New("service error")
	ErrParse         = errors.New("parse error")
)

// GenerationError is the single error type returned by Generator. Message is
// shown to the user as is.
type GenerationError struct {
	Kind    error
	Message string
	Wrapped error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() []error {
	if e.Wrapped == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Wrapped}
}

func configurationError(msg string) *GenerationError {
	return &GenerationError{Kind: ErrConfiguration, Message: msg}
}

func emptyResponseError(err error) *GenerationError {
	return &GenerationError{
		Kind:    ErrEmptyResponse,
		Message: "failed to generate study material: no content generated from API",
		Wrapped: err,
	}
}

func serviceError(err error) *GenerationError {
	return &GenerationError{
		Kind:    ErrService,
		Message: "failed to generate study material: " + err.Error(),
		Wrapped: err,
	}
}

func parseError(err error) *GenerationError {
	return &GenerationError{
		Kind:    ErrParse,
		Message: "failed to parse generated content: the AI response was not in the expected format",
		Wrapped: err,
	}
}
