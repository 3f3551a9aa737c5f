package transition

import (
	"errors"
	"fmt"

	"github.com/roach88/sems/internal/fact"
)

// BuildError represents a conflict detected while constructing or composing
// a transition. Build errors surface synchronously, before any execution,
// so callers can validate a whole pipeline up front. The offending
// transition or composite is never created.
type BuildError struct {
	// Code identifies the error category.
	Code BuildErrorCode

	// Message is a human-readable description.
	Message string

	// Fact identifies the conflicting fact type, when one is implicated.
	Fact fact.ID
}

// BuildErrorCode categorizes build errors.
type BuildErrorCode string

const (
	// ErrCodeDuplicateRequirement indicates a function's parameters require
	// the same fact type more than once.
	ErrCodeDuplicateRequirement BuildErrorCode = "DUPLICATE_REQUIREMENT"

	// ErrCodeDuplicateProduction indicates a function's results would
	// produce the same fact type more than once.
	ErrCodeDuplicateProduction BuildErrorCode = "DUPLICATE_PRODUCTION"

	// ErrCodeUnsatisfiableReorder indicates two composed transitions both
	// require a fact that the first does not replenish.
	ErrCodeUnsatisfiableReorder BuildErrorCode = "UNSATISFIABLE_REORDER"

	// ErrCodeUnsupportedShape indicates a function signature outside the
	// supported shapes (not a function, variadic, arity above 8, or an
	// invalid parameter/result type).
	ErrCodeUnsupportedShape BuildErrorCode = "UNSUPPORTED_SHAPE"
)

// Error implements the error interface.
func (e *BuildError) Error() string {
	if !e.Fact.IsZero() {
		return fmt.Sprintf("%s: %s (fact=%s)", e.Code, e.Message, e.Fact)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDuplicateRequirement reports whether err is a duplicate-requirement
// build error. Uses errors.As to handle wrapped errors.
func IsDuplicateRequirement(err error) bool {
	return hasCode(err, ErrCodeDuplicateRequirement)
}

// IsDuplicateProduction reports whether err is a duplicate-production
// build error.
func IsDuplicateProduction(err error) bool {
	return hasCode(err, ErrCodeDuplicateProduction)
}

// IsUnsatisfiableReorder reports whether err is an unsatisfiable-reorder
// composition error.
func IsUnsatisfiableReorder(err error) bool {
	return hasCode(err, ErrCodeUnsatisfiableReorder)
}

// IsUnsupportedShape reports whether err is an unsupported-shape build error.
func IsUnsupportedShape(err error) bool {
	return hasCode(err, ErrCodeUnsupportedShape)
}

func hasCode(err error, code BuildErrorCode) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func duplicateRequirementError(id fact.ID) *BuildError {
	return &BuildError{
		Code:    ErrCodeDuplicateRequirement,
		Message: "transition requires the same fact more than once",
		Fact:    id,
	}
}

func duplicateProductionError(id fact.ID) *BuildError {
	return &BuildError{
		Code:    ErrCodeDuplicateProduction,
		Message: "transition produces the same fact more than once",
		Fact:    id,
	}
}

func unsatisfiableReorderError(id fact.ID) *BuildError {
	return &BuildError{
		Code:    ErrCodeUnsatisfiableReorder,
		Message: "both transitions require the fact, but the first does not produce it",
		Fact:    id,
	}
}

func shapeError(format string, args ...any) *BuildError {
	return &BuildError{
		Code:    ErrCodeUnsupportedShape,
		Message: fmt.Sprintf(format, args...),
	}
}
