package bill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore.dev/beta/errs"

	"encore.app/billing/model"
	"encore.app/billing/store/storetest"
)

func TestCancelBill(t *testing.T) {
	testCases := []struct {
		name            string
		status          model.BillStatus
		expectedError   string
		expectedRecords int
	}{
		{
			name:            "new_bill",
			status:          model.BillStatusNew,
			expectedRecords: 2,
		},
		{
			name:            "failed_bill",
			status:          model.BillStatusFailed,
			expectedRecords: 4,
		},
		{
			name:            "already_cancelled_is_noop",
			status:          model.BillStatusCancelled,
			expectedRecords: 2,
		},
		{
			name:          "processing_bill",
			status:        model.BillStatusProcessing,
			expectedError: "invalid bill status transition from PROCESSING to CANCELLED",
		},
		{
			name:          "paid_bill",
			status:        model.BillStatusPaid,
			expectedError: "invalid bill status transition from PAID to CANCELLED",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := storetest.New()
			b := newTestBusiness(db, nil)
			created := mustCreate(t, b, newMemberBill(model.PaymentMethodPaymentGateway))
			forceStatus(t, db, created, tc.status)

			cancelled, err := b.CancelBill(context.Background(), created.UUID, model.ActorAdmin)

			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Equal(t, errs.FailedPrecondition, errs.Code(err))
				assert.Contains(t, err.Error(), tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.BillStatusCancelled, cancelled.Status)
			require.NotNil(t, cancelled.CancelledAt)
			assert.Len(t, db.RecordsFor(created.ID), tc.expectedRecords)
		})
	}
}
