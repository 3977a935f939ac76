package billing

import (
	"context"
	"fmt"

	"encore.dev/rlog"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"encore.app/billing/model"
	"encore.app/billing/workflow"
)

// temporalDispatcher starts the gateway workflows for charges and refunds.
type temporalDispatcher struct {
	temporal  client.Client
	taskQueue string
}

func newTemporalDispatcher(c client.Client, taskQueue string) *temporalDispatcher {
	return &temporalDispatcher{temporal: c, taskQueue: taskQueue}
}

// chargeWorkflowID is unique per charge attempt: a FAILED bill charged again
// gets a new processing_at and therefore a new workflow.
func chargeWorkflowID(bill *model.Bill) string {
	var attempt int64
	if bill.ProcessingAt != nil {
		attempt = bill.ProcessingAt.Unix()
	}
	return fmt.Sprintf("bill-charge-%s-%d", bill.UUID, attempt)
}

func refundWorkflowID(bill *model.Bill) string {
	return fmt.Sprintf("bill-refund-%s", bill.UUID)
}

func (d *temporalDispatcher) DispatchCharge(ctx context.Context, bill *model.Bill) error {
	workflowID := chargeWorkflowID(bill)
	params := workflow.ChargeBillParams{
		BillUUID:       bill.UUID,
		Amount:         bill.Amount,
		IdempotencyKey: workflowID,
	}
	if bill.PaymentMethodID != nil {
		params.PaymentMethodID = *bill.PaymentMethodID
	}
	return d.start(ctx, workflowID, workflow.ChargeBill, params)
}

func (d *temporalDispatcher) DispatchRefund(ctx context.Context, bill *model.Bill) error {
	workflowID := refundWorkflowID(bill)
	amount := bill.Amount
	if amount < 0 {
		amount = -amount
	}
	return d.start(ctx, workflowID, workflow.RefundBill, workflow.RefundBillParams{
		BillUUID:       bill.UUID,
		Amount:         amount,
		IdempotencyKey: workflowID,
	})
}

func (d *temporalDispatcher) start(ctx context.Context, workflowID string, wf any, params any) error {
	options := client.StartWorkflowOptions{
		ID:                                       workflowID,
		TaskQueue:                                d.taskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}

	_, err := d.temporal.ExecuteWorkflow(ctx, options, wf, params)
	if err != nil {
		// Distinguish AlreadyStarted (benign) vs real failure
		if temporal.IsWorkflowExecutionAlreadyStartedError(err) {
			rlog.Info("workflow already started", "workflow_id", workflowID)
			return nil
		}
		return fmt.Errorf("execute workflow %s: %w", workflowID, err)
	}

	rlog.Info("workflow started", "workflow_id", workflowID)
	return nil
}
