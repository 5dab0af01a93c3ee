package engine

import (
	"errors"
	"fmt"
)

var (
	ErrGameOver          = errors.New("game over: no further actions are possible")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLoanActive        = errors.New("a loan is already active")
	ErrNoLoan            = errors.New("no active loan")
	ErrNothingOwed       = errors.New("no tuition is owed")
	ErrNoStock           = errors.New("no stock to sell")
	ErrTestPending       = errors.New("a year-end test must be resolved first")
	ErrNoTestPending     = errors.New("no year-end test is pending")
	ErrInvalidPhase      = errors.New("action not allowed in the current phase")
	ErrExamFinished      = errors.New("exam already finished")
)

// ValidationError rejects an action before any state is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
