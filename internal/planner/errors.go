package planner

import (
	"errors"
	"fmt"
)

// ErrRequestFailed matches every RequestError
var ErrRequestFailed = errors.New("plan request failed")

// RequestError reports a failed or malformed plan request
type RequestError struct {
	Reason string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plan request failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("plan request failed: %s", e.Reason)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}
