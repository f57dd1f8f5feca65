package textract

import (
	"errors"
	"fmt"
)

// Common errors returned by the extraction service.
var (
	// ErrExtractionFailed indicates every configured strategy failed or
	// produced text below the usable threshold.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmptyDocument indicates the document contained no bytes at all.
	ErrEmptyDocument = errors.New("document is empty")
)

// StageError provides details about which extraction stage failed during a
// specific operation.
type StageError struct {
	Stage string // extraction stage that failed (e.g. "pdf-native", "ocr")
	Op    string // operation that was being performed
	Err   error  // underlying error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("extraction stage %s failed during %s: %v", e.Stage, e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(stage, op string, err error) *StageError {
	return &StageError{Stage: stage, Op: op, Err: err}
}
