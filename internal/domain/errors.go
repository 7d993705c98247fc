package domain

import (
	"errors"
	"fmt"
)

var (
	ErrExecutionTimeout = errors.New("execution timeout")
	ErrCommandNotFound  = errors.New("command not found")
	ErrMessageNotFound  = errors.New("message not found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrIdentityNotFound = errors.New("identity not found")
	ErrRenderSize       = errors.New("rendered element has zero width or height")
)

// PrimitiveError reports a failed primitive call back to the script.
type PrimitiveError struct {
	Primitive string
	Err       error
}

func (e *PrimitiveError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Primitive, e.Err)
}

func (e *PrimitiveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
