package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownScheme      = errors.New("unknown scheme")
	ErrUnknownList        = errors.New("unknown record list")
	ErrRecordNotFound     = errors.New("record index out of range")
	ErrReadOnlyField      = errors.New("field is computed and read-only")
	ErrJumpNotAllowed     = errors.New("scheme does not allow jumping between steps")
	ErrStepOutOfRange     = errors.New("step out of range")
	ErrImportInvalid      = errors.New("import payload is invalid")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrProfileIncomplete  = errors.New("branch profile is incomplete")
	ErrDraftMissing       = errors.New("no draft to submit")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationFailedError carries the ordered violation list from a failed
// final validation pass.
type ValidationFailedError struct {
	Errors []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("draft failed validation with %d violation(s)", len(e.Errors))
}
