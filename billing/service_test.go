package billing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"encore.app/billing/mocks/business/bill_business"
	"encore.app/billing/mocks/business/reconcile_business"
	"encore.app/billing/model"
)

// Run tests using `encore test`, which compiles the Encore app and then runs `go test`.
// Learn more: https://encore.dev/docs/go/develop/testing

type testService struct {
	*Service
	business   *bill_business.MockBusiness
	reconciler *reconcile_business.MockBusiness
	async      *asyncRecorder
}

func newTestService(t *testing.T) *testService {
	t.Helper()
	ctrl := gomock.NewController(t)

	business := bill_business.NewMockBusiness(ctrl)
	reconciler := reconcile_business.NewMockBusiness(ctrl)

	return &testService{
		Service: &Service{
			business:      business,
			reconciler:    reconciler,
			webhookSecret: testWebhookSecret,
			autoBatchSize: 50,
		},
		business:   business,
		reconciler: reconciler,
		async:      recordAsync(t),
	}
}

// asyncRecorder replaces runAsync so background publishing is observable
// without a running pubsub topic.
type asyncRecorder struct {
	mu  sync.Mutex
	ops []string
}

func recordAsync(t *testing.T) *asyncRecorder {
	t.Helper()
	rec := &asyncRecorder{}
	original := runAsync
	runAsync = func(op string, fn func(ctx context.Context) error) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.ops = append(rec.ops, op)
	}
	t.Cleanup(func() { runAsync = original })
	return rec
}

func (r *asyncRecorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

var testNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func sampleBill(status model.BillStatus) *model.Bill {
	return &model.Bill{
		ID:              1,
		UUID:            uuid.MustParse("8f14e45f-ceea-4e6f-9e1b-3f0c2a9d5b11"),
		Amount:          12500,
		PayorType:       model.PayorTypeMember,
		PayorID:         42,
		ProcedureID:     7,
		CostBreakdownID: 9,
		Status:          status,
		PaymentMethod:   model.PaymentMethodPaymentGateway,
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}
}
