package domain

import "encore.app/billing/model"

// billTransitions is the directed edge allow-list of the bill lifecycle.
// Same-status transitions are always allowed and are not listed.
var billTransitions = map[model.BillStatus][]model.BillStatus{
	model.BillStatusNone:       {model.BillStatusNew},
	model.BillStatusNew:        {model.BillStatusProcessing, model.BillStatusCancelled},
	model.BillStatusProcessing: {model.BillStatusFailed, model.BillStatusProcessing, model.BillStatusPaid, model.BillStatusRefunded},
	model.BillStatusFailed:     {model.BillStatusPaid, model.BillStatusProcessing, model.BillStatusCancelled},
	model.BillStatusPaid:       {},
	model.BillStatusRefunded:   {},
	model.BillStatusCancelled:  {},
}

// IsValidTransition reports whether a bill may move from source to target.
// It is the only gate used by code that changes a bill's status.
func IsValidTransition(source, target model.BillStatus) bool {
	if source == target {
		return true
	}
	for _, allowed := range billTransitions[source] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns a typed FailedPrecondition error when the
// transition is not allowed.
func ValidateTransition(source, target model.BillStatus) error {
	if !IsValidTransition(source, target) {
		return NewInvalidTransitionError(source, target)
	}
	return nil
}
