package bill

import (
	"context"

	"github.com/google/uuid"

	"encore.dev/rlog"

	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store"
	"encore.app/billing/store/bills"
)

// InitiateCharge moves a NEW or FAILED bill to PROCESSING and hands it to the
// payment gateway. PROCESSING is committed before dispatch so a concurrent
// sweep or duplicate call sees it and is rejected. Bills paid outside the
// gateway (WRITE_OFF, OFFLINE) settle to PAID in the same transaction.
func (b *business) InitiateCharge(ctx context.Context, billUUID uuid.UUID, actor model.Actor) (*model.Bill, error) {
	var charged bills.Bill
	err := b.stateMachine.GetBillWithLock(ctx, billUUID, func(uow domain.UnitOfWork, current bills.Bill) error {
		status := model.BillStatus(current.Status)
		if status != model.BillStatusNew && status != model.BillStatusFailed {
			return domain.NewInvalidTransitionError(status, model.BillStatusProcessing)
		}

		now := b.now()
		updated, err := domain.Transition(ctx, uow, current, domain.TransitionRequest{
			Target:     model.BillStatusProcessing,
			RecordType: actor.RecordType(),
			Body:       workflowRecord{Action: "initiate_charge", Actor: actor},
			At:         now,
		})
		if err != nil {
			return err
		}

		if model.PaymentMethod(updated.PaymentMethod) != model.PaymentMethodPaymentGateway {
			updated, err = domain.Transition(ctx, uow, updated, domain.TransitionRequest{
				Target:     model.BillStatusPaid,
				RecordType: actor.RecordType(),
				Body:       workflowRecord{Action: "settle_without_gateway", Actor: actor, Note: updated.PaymentMethod},
				At:         now,
			})
			if err != nil {
				return err
			}
		}

		charged = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	bill := store.ConvertDBBillToModel(charged)
	if bill.PaymentMethod == model.PaymentMethodPaymentGateway {
		// The outcome arrives later through the gateway event reconciler
		if err := b.dispatcher.DispatchCharge(ctx, bill); err != nil {
			rlog.Error("failed to dispatch charge to payment gateway", "bill_uuid", bill.UUID, "error", err)
		}
	}

	return bill, nil
}
