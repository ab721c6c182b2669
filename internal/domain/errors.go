package domain

import (
	"errors"
	"fmt"
)

var (
	// Lookup errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrTransferNotFound = errors.New("transfer not found")
	ErrScheduleNotFound = errors.New("schedule not found")

	// Submission errors
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already in use")
)

// ErrorKind identifies one variant of the closed failure taxonomy. Callers
// switch on the kind rather than type-asserting an open error hierarchy.
type ErrorKind string

const (
	ErrorKindValidation        ErrorKind = "validation"
	ErrorKindInsufficientFunds ErrorKind = "insufficient_funds"
	ErrorKindLimitExceeded     ErrorKind = "limit_exceeded"
	ErrorKindFraudBlocked      ErrorKind = "fraud_blocked"
	ErrorKindExternalService   ErrorKind = "external_service"
	ErrorKindInvalidState      ErrorKind = "invalid_state"
)

// ValidationError reports bad input naming the offending field. No side
// effects have occurred when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Kind() ErrorKind { return ErrorKindValidation }

// InsufficientFundsError is terminal for this attempt; no mutation happened.
type InsufficientFundsError struct {
	Available int64
	Required  int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %d, required %d", e.Available, e.Required)
}

func (e *InsufficientFundsError) Kind() ErrorKind { return ErrorKindInsufficientFunds }

// LimitScope names which rolling window a limit check ran against.
type LimitScope string

const (
	LimitScopeDaily   LimitScope = "daily"
	LimitScopeMonthly LimitScope = "monthly"
)

// LimitExceededError is terminal until the period rolls over.
type LimitExceededError struct {
	Scope     LimitScope
	Limit     int64
	Attempted int64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s limit exceeded: limit %d, attempted %d", e.Scope, e.Limit, e.Attempted)
}

func (e *LimitExceededError) Kind() ErrorKind { return ErrorKindLimitExceeded }

// FraudBlockedError records a block verdict from the risk gate. The record is
// persisted as failed before this error surfaces; no debit occurred.
type FraudBlockedError struct {
	Score int
	Flags []string
}

func (e *FraudBlockedError) Error() string {
	return fmt.Sprintf("transfer blocked by risk gate (score %d)", e.Score)
}

func (e *FraudBlockedError) Kind() ErrorKind { return ErrorKindFraudBlocked }

// ExternalServiceError wraps a failure talking to a settlement rail or other
// external collaborator. By the time a caller sees it the debit has already
// been compensated.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func (e *ExternalServiceError) Kind() ErrorKind { return ErrorKindExternalService }

// InvalidStateError reports an operation that is not legal for the record's
// current status, naming that status.
type InvalidStateError struct {
	Operation string
	Current   TransferStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s transfer in state %s", e.Operation, e.Current)
}

func (e *InvalidStateError) Kind() ErrorKind { return ErrorKindInvalidState }

// KindOf extracts the taxonomy kind from err, or "" for errors outside the
// closed set.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}

	return ""
}
