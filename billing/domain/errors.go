package domain

import (
	"errors"
	"fmt"
	"strings"

	"encore.dev/beta/errs"

	"encore.app/billing/model"
)

// ValidationDetails lists every violation found in a rejected payload.
type ValidationDetails struct {
	Violations []string `json:"violations"`
}

func (ValidationDetails) ErrDetails() {}

// TransitionDetails describes a state transition rejected by the allow-list.
type TransitionDetails struct {
	From model.BillStatus `json:"from"`
	To   model.BillStatus `json:"to"`
}

func (TransitionDetails) ErrDetails() {}

// StatusDetails describes an operation refused because of the bill's status.
type StatusDetails struct {
	Required model.BillStatus `json:"required"`
	Actual   model.BillStatus `json:"actual"`
}

func (StatusDetails) ErrDetails() {}

// NewValidationError builds an InvalidArgument error carrying all violations.
func NewValidationError(violations []string) error {
	return &errs.Error{
		Code:    errs.InvalidArgument,
		Message: "validation failed: " + strings.Join(violations, "; "),
		Details: ValidationDetails{Violations: violations},
	}
}

// NewInvalidTransitionError builds a FailedPrecondition error for a rejected transition.
func NewInvalidTransitionError(from, to model.BillStatus) error {
	return &errs.Error{
		Code:    errs.FailedPrecondition,
		Message: fmt.Sprintf("invalid bill status transition from %s to %s", displayStatus(from), to),
		Details: TransitionDetails{From: from, To: to},
	}
}

// NewUnexpectedStatusError builds a FailedPrecondition error for an operation
// that only applies to bills in the required status.
func NewUnexpectedStatusError(required, actual model.BillStatus) error {
	return &errs.Error{
		Code:    errs.FailedPrecondition,
		Message: fmt.Sprintf("bill is %s, operation requires %s", displayStatus(actual), required),
		Details: StatusDetails{Required: required, Actual: actual},
	}
}

// IsValidationError reports whether err was produced by NewValidationError.
func IsValidationError(err error) bool {
	_, ok := ValidationViolations(err)
	return ok
}

// ValidationViolations returns the violations carried by a validation error.
func ValidationViolations(err error) ([]string, bool) {
	var e *errs.Error
	if !errors.As(err, &e) {
		return nil, false
	}
	details, ok := e.Details.(ValidationDetails)
	if !ok {
		return nil, false
	}
	return details.Violations, true
}

// IsInvalidTransition reports whether err was produced by NewInvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var e *errs.Error
	if !errors.As(err, &e) {
		return false
	}
	_, ok := e.Details.(TransitionDetails)
	return ok
}

// IsUnexpectedStatus reports whether err was produced by NewUnexpectedStatusError.
func IsUnexpectedStatus(err error) bool {
	var e *errs.Error
	if !errors.As(err, &e) {
		return false
	}
	_, ok := e.Details.(StatusDetails)
	return ok
}

func displayStatus(s model.BillStatus) string {
	if s == model.BillStatusNone {
		return "NONE"
	}
	return string(s)
}
