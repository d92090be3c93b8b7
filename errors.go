package rangeio

import (
	"errors"
	"fmt"
)

// ErrCancelled is delivered to an outstanding [Token] when the range or
// source serving it is closed. It is never wrapped in a [*SourceError].
var ErrCancelled = errors.New("rangeio: cancelled")

// SourceError records which range's source failed. A range built by [New]
// wraps its source's error exactly once; every adaptor further down the
// chain hands the same *SourceError on, so whoever ends the pipeline sees
// the name and ID of the device that broke.
type SourceError struct {
	Range Info
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("range %q failed: %v", e.Range.Name, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsSourceError reports whether err came from a source rather than from an
// adaptor's own function or from cancellation.
func IsSourceError(err error) bool {
	if err == nil {
		return false
	}
	var se *SourceError
	return errors.As(err, &se)
}

// RangeOf returns the identity of the range whose source produced err.
// The second result is false when err did not come from a source.
func RangeOf(err error) (Info, bool) {
	if err == nil {
		return Info{}, false
	}

	var se *SourceError
	if errors.As(err, &se) {
		return se.Range, true
	}
	return Info{}, false
}

// CauseOf strips the range attribution and returns the error the source
// itself reported. Errors without attribution are returned unchanged.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var se *SourceError
	if errors.As(err, &se) {
		return se.Err
	}

	return err
}

func wrapSourceError(info Info, err error) error {
	if errors.Is(err, ErrCancelled) {
		return err
	}
	var se *SourceError
	if errors.As(err, &se) {
		return err
	}
	return &SourceError{Range: info, Err: err}
}
