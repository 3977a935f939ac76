package bill

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"encore.dev/beta/errs"

	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store/bills"
)

// RecordGatewayExchange appends a gateway request or response record to the
// bill's audit trail without touching its status.
func (b *business) RecordGatewayExchange(ctx context.Context, billUUID uuid.UUID, recordType model.ProcessingRecordType, body any, transactionID *string) error {
	if recordType != model.ProcessingRecordTypePaymentGatewayRequest && recordType != model.ProcessingRecordTypePaymentGatewayResponse {
		return &errs.Error{
			Code:    errs.InvalidArgument,
			Message: fmt.Sprintf("%s is not a gateway exchange record type", recordType),
		}
	}

	return b.stateMachine.GetBillWithLock(ctx, billUUID, func(uow domain.UnitOfWork, current bills.Bill) error {
		_, err := domain.AppendRecord(ctx, uow, current, recordType, body, transactionID)
		return err
	})
}

// RecordChargeRequest appends the payment_gateway_request record of a charge
// submission. The charge may only be sent while the bill is PROCESSING: a bill
// refunded, cancelled or settled in the meantime is refused, so the caller
// must not contact the gateway.
func (b *business) RecordChargeRequest(ctx context.Context, billUUID uuid.UUID, body any) error {
	return b.stateMachine.GetBillWithLock(ctx, billUUID, func(uow domain.UnitOfWork, current bills.Bill) error {
		if status := model.BillStatus(current.Status); status != model.BillStatusProcessing {
			return domain.NewUnexpectedStatusError(model.BillStatusProcessing, status)
		}
		_, err := domain.AppendRecord(ctx, uow, current, model.ProcessingRecordTypePaymentGatewayRequest, body, nil)
		return err
	})
}
