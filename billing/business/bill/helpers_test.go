package bill

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"encore.app/billing/business/eligibility"
	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store/bills"
	"encore.app/billing/store/storetest"
)

var testNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func newTestBusiness(db *storetest.Store, dispatcher Dispatcher, manualOnlyOrganizationIDs ...int64) *business {
	db.Now = func() time.Time { return testNow }
	return &business{
		billRepo:     db.Bills(),
		recordRepo:   db.Records(),
		stateMachine: db,
		dispatcher:   dispatcher,
		evaluator:    eligibility.NewEvaluator(manualOnlyOrganizationIDs),
		now:          func() time.Time { return testNow },
	}
}

func newMemberBill(paymentMethod model.PaymentMethod) *model.Bill {
	return &model.Bill{
		Amount:          12500,
		PayorType:       model.PayorTypeMember,
		PayorID:         42,
		ProcedureID:     7,
		CostBreakdownID: 9,
		PaymentMethod:   paymentMethod,
	}
}

func mustCreate(t *testing.T, b *business, bill *model.Bill) *model.Bill {
	t.Helper()
	created, err := b.CreateBill(context.Background(), bill, model.ActorSystem)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.UUID)
	return created
}

// forceStatus walks a NEW bill to status through valid transitions.
func forceStatus(t *testing.T, db *storetest.Store, bill *model.Bill, status model.BillStatus) {
	t.Helper()

	paths := map[model.BillStatus][]model.BillStatus{
		model.BillStatusNew:        nil,
		model.BillStatusProcessing: {model.BillStatusProcessing},
		model.BillStatusPaid:       {model.BillStatusProcessing, model.BillStatusPaid},
		model.BillStatusFailed:     {model.BillStatusProcessing, model.BillStatusFailed},
		model.BillStatusRefunded:   {model.BillStatusProcessing, model.BillStatusRefunded},
		model.BillStatusCancelled:  {model.BillStatusCancelled},
	}

	err := db.GetBillWithLock(context.Background(), bill.UUID, func(uow domain.UnitOfWork, current bills.Bill) error {
		for _, target := range paths[status] {
			var err error
			current, err = domain.Transition(context.Background(), uow, current, domain.TransitionRequest{
				Target:     target,
				RecordType: model.ProcessingRecordTypeManualBillingCorrection,
				At:         testNow,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}
