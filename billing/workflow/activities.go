package workflow

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"encore.app/billing/business/bill"
	"encore.app/billing/business/reconcile"
	"encore.app/billing/domain"
	"encore.app/billing/gateway"
	"encore.app/billing/model"
)

// ActivityDependencies holds the dependencies needed by activities
type ActivityDependencies struct {
	BillBusiness bill.Business
	Reconciler   reconcile.Business
	Gateway      gateway.Client
}

var activityDeps *ActivityDependencies

// SetActivityDependencies sets the dependencies for activities
func SetActivityDependencies(billBusiness bill.Business, reconciler reconcile.Business, gatewayClient gateway.Client) {
	activityDeps = &ActivityDependencies{
		BillBusiness: billBusiness,
		Reconciler:   reconciler,
		Gateway:      gatewayClient,
	}
}

// ErrTypeBillNotProcessing marks a charge abandoned because the bill was
// refunded, cancelled, or otherwise moved out of PROCESSING before it reached
// the gateway.
const ErrTypeBillNotProcessing = "BILL_NOT_PROCESSING"

// gatewayExchange is the body of payment_gateway_request and
// payment_gateway_response records.
type gatewayExchange struct {
	Operation string `json:"operation"`
	Attempt   int32  `json:"attempt"`
	Request   any    `json:"request,omitempty"`
	Response  any    `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
}

func dependenciesReady(ctx context.Context) error {
	if activityDeps == nil || activityDeps.BillBusiness == nil || activityDeps.Gateway == nil || activityDeps.Reconciler == nil {
		activity.GetLogger(ctx).Error("Activity dependencies not set")
		return temporal.NewApplicationError("activity dependencies not initialized", "DependencyError")
	}
	return nil
}

// SubmitChargeActivity sends a charge to the payment gateway and records the
// request and the acknowledgement on the bill. It returns the gateway
// transaction id.
func SubmitChargeActivity(ctx context.Context, params ChargeBillParams) (string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Submitting charge", "billUUID", params.BillUUID, "amount", params.Amount)

	if err := dependenciesReady(ctx); err != nil {
		return "", err
	}

	req := gateway.ChargeRequest{
		BillUUID:        params.BillUUID,
		Amount:          params.Amount,
		PaymentMethodID: params.PaymentMethodID,
		IdempotencyKey:  params.IdempotencyKey,
	}
	recordRequest := func(body gatewayExchange) error {
		err := activityDeps.BillBusiness.RecordChargeRequest(ctx, params.BillUUID, body)
		if domain.IsUnexpectedStatus(err) {
			logger.Warn("Bill left PROCESSING before the charge was sent", "billUUID", params.BillUUID, "error", err)
			return temporal.NewNonRetryableApplicationError("bill is no longer processing", ErrTypeBillNotProcessing, err)
		}
		return err
	}
	return submit(ctx, params.BillUUID, "charge", req, recordRequest, func() (*gateway.Response, error) {
		return activityDeps.Gateway.Charge(ctx, req)
	})
}

// SubmitRefundActivity sends a refund to the payment gateway and records the
// exchange on the bill being refunded.
func SubmitRefundActivity(ctx context.Context, params RefundBillParams) (string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Submitting refund", "billUUID", params.BillUUID, "amount", params.Amount)

	if err := dependenciesReady(ctx); err != nil {
		return "", err
	}

	req := gateway.RefundRequest{
		BillUUID:       params.BillUUID,
		Amount:         params.Amount,
		IdempotencyKey: params.IdempotencyKey,
	}
	recordRequest := func(body gatewayExchange) error {
		return activityDeps.BillBusiness.RecordGatewayExchange(ctx, params.BillUUID, model.ProcessingRecordTypePaymentGatewayRequest, body, nil)
	}
	return submit(ctx, params.BillUUID, "refund", req, recordRequest, func() (*gateway.Response, error) {
		return activityDeps.Gateway.Refund(ctx, req)
	})
}

// submit records the request, calls the gateway, and records the outcome. The
// gateway is not called when the request cannot be recorded.
func submit(ctx context.Context, billUUID uuid.UUID, operation string, req any, recordRequest func(gatewayExchange) error, call func() (*gateway.Response, error)) (string, error) {
	logger := activity.GetLogger(ctx)
	attempt := activity.GetInfo(ctx).Attempt

	err := recordRequest(gatewayExchange{Operation: operation, Attempt: attempt, Request: req})
	if err != nil {
		logger.Error("Failed to record gateway request", "billUUID", billUUID, "error", err)
		return "", err
	}

	resp, callErr := call()
	if callErr != nil {
		logger.Error("Payment gateway call failed", "billUUID", billUUID, "operation", operation, "error", callErr)
		if err := activityDeps.BillBusiness.RecordGatewayExchange(ctx, billUUID, model.ProcessingRecordTypePaymentGatewayResponse,
			gatewayExchange{Operation: operation, Attempt: attempt, Error: callErr.Error()}, nil); err != nil {
			logger.Error("Failed to record gateway error response", "billUUID", billUUID, "error", err)
		}

		var gatewayErr *gateway.Error
		if errors.As(callErr, &gatewayErr) && !gatewayErr.Retryable() {
			return "", temporal.NewNonRetryableApplicationError("payment gateway rejected request", "GATEWAY_REJECTED", callErr)
		}
		return "", callErr
	}

	err = activityDeps.BillBusiness.RecordGatewayExchange(ctx, billUUID, model.ProcessingRecordTypePaymentGatewayResponse,
		gatewayExchange{Operation: operation, Attempt: attempt, Response: resp}, &resp.TransactionID)
	if err != nil {
		logger.Error("Failed to record gateway response", "billUUID", billUUID, "error", err)
		return "", err
	}

	logger.Info("Payment gateway accepted request", "billUUID", billUUID, "operation", operation, "transactionID", resp.TransactionID)
	return resp.TransactionID, nil
}

// ReportChargeFailureActivity feeds a charge.failed event through the
// reconciler when the gateway never accepted the charge, so the bill leaves
// PROCESSING and can be retried. A bill the gateway already settled through a
// webhook is left as is.
func ReportChargeFailureActivity(ctx context.Context, params ChargeBillParams, reason string) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Reporting charge submission failure", "billUUID", params.BillUUID, "reason", reason)

	if err := dependenciesReady(ctx); err != nil {
		return err
	}

	envelope, err := json.Marshal(map[string]any{
		"event_type": model.GatewayEventChargeFailed,
		"message_payload": map[string]any{
			"version":        1,
			"bill_uuid":      params.BillUUID.String(),
			"transaction_id": "submission-" + params.IdempotencyKey,
		},
		"error_payload": map[string]any{
			"decline_code": model.DeclineCodeInternalError,
			"message":      reason,
		},
	})
	if err != nil {
		return temporal.NewNonRetryableApplicationError("failed to build charge failure event", "EVENT_ENCODING_FAILED", err)
	}

	msg, err := domain.ParsePaymentGatewayEventMessage(envelope)
	if err != nil {
		return temporal.NewNonRetryableApplicationError("invalid charge failure event", "EVENT_INVALID", err)
	}

	result, err := activityDeps.Reconciler.HandleEvent(ctx, msg)
	if err != nil {
		if domain.IsInvalidTransition(err) {
			logger.Warn("Bill already settled, charge failure not applied", "billUUID", params.BillUUID, "error", err)
			return nil
		}
		logger.Error("Failed to report charge failure", "billUUID", params.BillUUID, "error", err)
		return err
	}

	logger.Info("Charge failure reported", "billUUID", params.BillUUID, "outcome", result.Outcome)
	return nil
}
