package bill

import (
	"context"

	"github.com/google/uuid"

	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store"
	"encore.app/billing/store/bills"
)

// CancelBill cancels a bill that has not reached the gateway yet.
// Cancelling an already cancelled bill is a no-op.
func (b *business) CancelBill(ctx context.Context, billUUID uuid.UUID, actor model.Actor) (*model.Bill, error) {
	var result bills.Bill
	err := b.stateMachine.GetBillWithLock(ctx, billUUID, func(uow domain.UnitOfWork, current bills.Bill) error {
		if model.BillStatus(current.Status) == model.BillStatusCancelled {
			result = current
			return nil
		}

		updated, err := domain.Transition(ctx, uow, current, domain.TransitionRequest{
			Target:     model.BillStatusCancelled,
			RecordType: actor.RecordType(),
			Body:       workflowRecord{Action: "cancel_bill", Actor: actor},
			At:         b.now(),
		})
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store.ConvertDBBillToModel(result), nil
}
