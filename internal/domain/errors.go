package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Pipeline errors
	CodeUnsupportedFormat      ErrorCode = "UNSUPPORTED_FORMAT"
	CodeExtractionEmpty        ErrorCode = "EXTRACTION_EMPTY"
	CodeModelResponseMalformed ErrorCode = "MODEL_RESPONSE_MALFORMED"
	CodeCardinalityMismatch    ErrorCode = "CARDINALITY_MISMATCH"
	CodeRenderFailure          ErrorCode = "RENDER_FAILURE"
	CodeLLMServiceError        ErrorCode = "LLM_SERVICE_ERROR"

	// Quiz session errors
	CodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	CodeInvalidState    ErrorCode = "INVALID_STATE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail to the error and returns it for chaining.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnsupportedFormatError(extension string) *DomainError {
	return NewError(CodeUnsupportedFormat, fmt.Sprintf("Unsupported file format: %q", extension), nil).
		WithContext("extension", extension)
}

func NewExtractionEmptyError(err error) *DomainError {
	return NewError(CodeExtractionEmpty, "No usable text could be extracted from the document", err)
}

func NewModelResponseMalformedError(err error) *DomainError {
	return NewError(CodeModelResponseMalformed, "Failed to parse response from the model", err)
}

func NewCardinalityMismatchError(requested, got int) *DomainError {
	return NewError(CodeCardinalityMismatch, fmt.Sprintf("Requested %d slides but got %d", requested, got), nil).
		WithContext("requested", requested).
		WithContext("got", got)
}

func NewRenderFailureError(err error) *DomainError {
	return NewError(CodeRenderFailure, "Presentation creation failed", err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", err)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Quiz session not found with ID: %s", sessionID), nil)
}

func NewInvalidStateError(state SessionState, action string) *DomainError {
	return NewError(CodeInvalidState, fmt.Sprintf("Cannot %s while quiz is %s", action, state), nil)
}

func NewEmptyQuizError() *DomainError {
	return NewError(CodeInvalidState, "Quiz has no questions to answer", nil)
}

// HasCode reports whether err is a DomainError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsMalformedResponse reports whether err rejects a model reply. A cardinality
// mismatch is a malformed-response variant.
func IsMalformedResponse(err error) bool {
	return HasCode(err, CodeModelResponseMalformed) || HasCode(err, CodeCardinalityMismatch)
}
