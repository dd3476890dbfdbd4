package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnclassified  = errors.New("unclassified activity")
	ErrWrite         = errors.New("write failure")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTransient     = errors.New("transient failure")
)

// Disposition describes how the export run should react to a failure.
type Disposition int

const (
	// DispositionAbort stops the batch; the output file keeps whatever was written.
	DispositionAbort Disposition = iota
	// DispositionSkip drops the current activity and continues with the next one.
	DispositionSkip
	// DispositionFail records the current activity as failed and continues.
	DispositionFail
)

// Wrap builds an error message that includes pipeline context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureDisposition maps a pipeline error to the action the export run takes
// after the failure. Classification misses skip the activity, transient fetch
// failures mark it failed and move on, and everything else, write failures in
// particular, aborts the batch.
func FailureDisposition(err error) Disposition {
	switch {
	case errors.Is(err, ErrUnclassified):
		return DispositionSkip
	case errors.Is(err, ErrTransient), errors.Is(err, ErrNotFound):
		return DispositionFail
	}
	return DispositionAbort
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
