package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors
	ErrValidation     = errors.New("input outside declared domain")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrSchemaMismatch = errors.New("dataset schema mismatch")

	// Statistically undefined operations. These are always surfaced,
	// never defaulted to a placeholder value.
	ErrEmptyDataset    = errors.New("dataset is empty")
	ErrEmptyColumn     = errors.New("column has zero observations")
	ErrDegenerateInput = errors.New("degenerate input: zero variance")
	ErrDegenerateGroup = errors.New("degenerate group: fewer than 2 observations")
	ErrEmptyLabelSet   = errors.New("label class entirely absent")

	// Model fitting errors
	ErrSingularDesign = errors.New("design matrix is rank-deficient")
	ErrNonConvergence = errors.New("iteration limit reached without convergence")
)

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, reason)
}

func NewUnknownColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

func NewDegenerateInputError(column string) error {
	return fmt.Errorf("%w: column %q", ErrDegenerateInput, column)
}

func NewDegenerateGroupError(column string, group int, n int) error {
	return fmt.Errorf("%w: column %q group %d has n=%d", ErrDegenerateGroup, column, group, n)
}

func NewEmptyLabelSetError(class int) error {
	return fmt.Errorf("%w: class %d", ErrEmptyLabelSet, class)
}

func NewSingularDesignError(detail string) error {
	return fmt.Errorf("%w: %s", ErrSingularDesign, detail)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, ErrSchemaMismatch)
}

func IsDegenerateError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrEmptyColumn) ||
		errors.Is(err, ErrDegenerateInput) ||
		errors.Is(err, ErrDegenerateGroup) ||
		errors.Is(err, ErrEmptyLabelSet)
}

func IsFitError(err error) bool {
	return errors.Is(err, ErrSingularDesign) ||
		errors.Is(err, ErrNonConvergence)
}
