package eligibility

import (
	"fmt"
	"time"

	"encore.dev/beta/errs"

	"encore.app/billing/model"
)

// Evaluator decides whether employer-funded bills may be charged.
// Scheduling eligibility (time based) and auto-processing eligibility
// (organization policy) are separate so a sweep can tell "ready, needs a
// human" apart from "ready and safe to charge".
type Evaluator struct {
	manualOnlyOrganizations map[int64]struct{}
}

// NewEvaluator creates an evaluator. Bills of organizations in
// manualOnlyOrganizationIDs are never auto-processed.
func NewEvaluator(manualOnlyOrganizationIDs []int64) *Evaluator {
	manualOnly := make(map[int64]struct{}, len(manualOnlyOrganizationIDs))
	for _, id := range manualOnlyOrganizationIDs {
		manualOnly[id] = struct{}{}
	}
	return &Evaluator{manualOnlyOrganizations: manualOnly}
}

// CanEmployerBillBeProcessed reports whether the bill's processing window has opened.
func (e *Evaluator) CanEmployerBillBeProcessed(bill *model.Bill, now time.Time) (bool, error) {
	if err := requireEmployer(bill); err != nil {
		return false, err
	}
	scheduled := bill.ProcessingScheduledAtOrAfter
	return scheduled != nil && !scheduled.After(now), nil
}

// CanEmployerBillBeAutoProcessed additionally excludes manual-only organizations.
// For employer bills the payor id is the organization id.
func (e *Evaluator) CanEmployerBillBeAutoProcessed(bill *model.Bill, now time.Time) (bool, error) {
	ready, err := e.CanEmployerBillBeProcessed(bill, now)
	if err != nil || !ready {
		return false, err
	}
	return !e.IsManualOnlyOrganization(bill.PayorID), nil
}

func (e *Evaluator) IsManualOnlyOrganization(organizationID int64) bool {
	_, ok := e.manualOnlyOrganizations[organizationID]
	return ok
}

func requireEmployer(bill *model.Bill) error {
	if bill == nil {
		return &errs.Error{Code: errs.Internal, Message: "eligibility check called without a bill"}
	}
	if bill.PayorType != model.PayorTypeEmployer {
		return &errs.Error{
			Code:    errs.Internal,
			Message: fmt.Sprintf("eligibility check requires an EMPLOYER bill, got %s", bill.PayorType),
		}
	}
	return nil
}
