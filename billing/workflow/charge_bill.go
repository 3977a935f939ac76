package workflow

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// ChargeBillParams contains parameters for the ChargeBill workflow
type ChargeBillParams struct {
	BillUUID        uuid.UUID `json:"bill_uuid"`
	Amount          int64     `json:"amount"`
	PaymentMethodID string    `json:"payment_method_id,omitempty"`
	IdempotencyKey  string    `json:"idempotency_key"`
}

// RefundBillParams contains parameters for the RefundBill workflow
type RefundBillParams struct {
	BillUUID       uuid.UUID `json:"bill_uuid"`
	Amount         int64     `json:"amount"`
	IdempotencyKey string    `json:"idempotency_key"`
}

// ChargeBill submits a PROCESSING bill to the payment gateway. Settlement is
// not awaited: the gateway reports it through the webhook. When the gateway
// keeps refusing the submission the bill is failed so it can be retried. A
// bill that left PROCESSING before submission is not charged at all.
func ChargeBill(ctx workflow.Context, params ChargeBillParams) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting charge bill workflow", "billUUID", params.BillUUID, "amount", params.Amount)

	var transactionID string
	err := workflow.ExecuteActivity(gatewayActivityContext(ctx), SubmitChargeActivity, params).Get(ctx, &transactionID)
	if err != nil {
		var appErr *temporal.ApplicationError
		if errors.As(err, &appErr) && appErr.Type() == ErrTypeBillNotProcessing {
			logger.Warn("Charge abandoned, bill is no longer processing", "billUUID", params.BillUUID)
			return nil
		}

		logger.Error("Charge submission failed", "billUUID", params.BillUUID, "error", err)

		reportErr := workflow.ExecuteActivity(bookkeepingActivityContext(ctx), ReportChargeFailureActivity, params, err.Error()).Get(ctx, nil)
		if reportErr != nil {
			logger.Error("Failed to report charge failure", "billUUID", params.BillUUID, "error", reportErr)
			return reportErr
		}
		return err
	}

	logger.Info("Charge bill workflow completed", "billUUID", params.BillUUID, "transactionID", transactionID)
	return nil
}

// RefundBill submits a refund to the payment gateway. The bill is already
// REFUNDED locally; a refund the gateway never accepts is left in the
// processing records for operator follow-up.
func RefundBill(ctx workflow.Context, params RefundBillParams) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting refund bill workflow", "billUUID", params.BillUUID, "amount", params.Amount)

	var transactionID string
	err := workflow.ExecuteActivity(gatewayActivityContext(ctx), SubmitRefundActivity, params).Get(ctx, &transactionID)
	if err != nil {
		logger.Error("Refund submission failed, manual follow-up required", "billUUID", params.BillUUID, "error", err)
		return err
	}

	logger.Info("Refund bill workflow completed", "billUUID", params.BillUUID, "transactionID", transactionID)
	return nil
}

func gatewayActivityContext(ctx workflow.Context) workflow.Context {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        time.Minute,
			MaximumAttempts:        8,
			NonRetryableErrorTypes: []string{"GATEWAY_REJECTED", ErrTypeBillNotProcessing, "DependencyError"},
		},
	}
	return workflow.WithActivityOptions(ctx, activityOptions)
}

func bookkeepingActivityContext(ctx workflow.Context) workflow.Context {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	return workflow.WithActivityOptions(ctx, activityOptions)
}
