package bill

import (
	"context"
	"time"

	"github.com/google/uuid"

	"encore.app/billing/business/eligibility"
	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store/bills"
	"encore.app/billing/store/records"
)

// Business is the billing orchestrator used by the API layer, the
// auto-processing sweep and the gateway workflows.
type Business interface {
	CreateBill(ctx context.Context, bill *model.Bill, actor model.Actor) (*model.Bill, error)
	GetBill(ctx context.Context, billUUID uuid.UUID) (*model.Bill, error)
	ListBills(ctx context.Context, filter ListBillsFilter) ([]*model.Bill, int64, error)
	ListProcessingRecords(ctx context.Context, billUUID uuid.UUID) ([]*model.BillProcessingRecord, error)

	InitiateCharge(ctx context.Context, billUUID uuid.UUID, actor model.Actor) (*model.Bill, error)
	CancelBill(ctx context.Context, billUUID uuid.UUID, actor model.Actor) (*model.Bill, error)
	RefundBill(ctx context.Context, billUUID uuid.UUID, actor model.Actor) (*model.Bill, error)

	RecordGatewayExchange(ctx context.Context, billUUID uuid.UUID, recordType model.ProcessingRecordType, body any, transactionID *string) error
	RecordChargeRequest(ctx context.Context, billUUID uuid.UUID, body any) error
	AutoProcessEmployerBills(ctx context.Context, now time.Time, batchSize int32) (*AutoProcessResult, error)
}

// Dispatcher hands charges and refunds to the payment gateway without
// waiting for settlement; outcomes arrive later as gateway events.
type Dispatcher interface {
	DispatchCharge(ctx context.Context, bill *model.Bill) error
	DispatchRefund(ctx context.Context, bill *model.Bill) error
}

type business struct {
	billRepo     bills.Querier
	recordRepo   records.Querier
	stateMachine domain.StateMachine
	dispatcher   Dispatcher
	evaluator    *eligibility.Evaluator
	now          func() time.Time
}

// NewBillBusiness creates the bill orchestrator
func NewBillBusiness(
	billRepo bills.Querier,
	recordRepo records.Querier,
	stateMachine domain.StateMachine,
	dispatcher Dispatcher,
	evaluator *eligibility.Evaluator,
) Business {
	return &business{
		billRepo:     billRepo,
		recordRepo:   recordRepo,
		stateMachine: stateMachine,
		dispatcher:   dispatcher,
		evaluator:    evaluator,
		now:          time.Now,
	}
}

// workflowRecord is the body of billing_service_workflow and
// admin_billing_workflow records.
type workflowRecord struct {
	Action string      `json:"action"`
	Actor  model.Actor `json:"actor"`
	Note   string      `json:"note,omitempty"`
}
