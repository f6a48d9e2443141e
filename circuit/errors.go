package circuit

import (
	"errors"
	"fmt"
)

// Sentinel errors for the circuit package's abstract error kinds. Budget,
// config, and structural errors are all returned normally; InvariantError
// is only ever produced alongside a panic recovered at the cmd/circuitc
// boundary, never returned from ordinary library calls.
var (
	ErrConfig             = errors.New("circuit: invalid configuration")
	ErrBudgetExceeded     = errors.New("circuit: budget exceeded")
	ErrInvariantViolation = errors.New("circuit: invariant violation")
	ErrSealed             = errors.New("circuit: already sealed")
	ErrNotSealed          = errors.New("circuit: not sealed")
	ErrMalformedFile      = errors.New("circuit: malformed circuit file")
)

// BudgetError reports which budget was exceeded, its limit, and the value
// that tripped it. Always fatal for the current compilation: a circuit that
// cannot satisfy the I/O or gate budget is not a valid proving statement.
type BudgetError struct {
	Budget    string
	Limit     uint64
	Requested uint64
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("circuit: budget %q exceeded: requested %d, limit %d", e.Budget, e.Requested, e.Limit)
}

func (e *BudgetError) Unwrap() error { return ErrBudgetExceeded }

// InvariantError wraps an internal defect: a gate whose inputs are not
// previously defined, a double-defined output wire, or any other condition
// that indicates a bug in this compiler rather than bad input. Library code
// panics with an *InvariantError; only cmd/circuitc recovers it.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("circuit: invariant violation: %s", e.Detail)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

func invariantViolation(format string, args ...any) {
	panic(&InvariantError{Detail: fmt.Sprintf(format, args...)})
}
