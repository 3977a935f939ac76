package bill

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"encore.dev/rlog"

	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store"
	"encore.app/billing/store/bills"
)

// RefundBill refunds a bill.
//   - PROCESSING: the in-flight charge is reversed and the bill becomes REFUNDED.
//     The gateway refund is only sent when a charge request was recorded; a
//     charge that was never sent is abandoned by the charge workflow instead.
//   - PAID: PAID is terminal, so a refund bill with the negated amount is
//     created and driven NEW -> PROCESSING -> REFUNDED. The refund bill is returned.
//   - REFUNDED: no-op.
//
// Every other status is rejected as an invalid transition.
func (b *business) RefundBill(ctx context.Context, billUUID uuid.UUID, actor model.Actor) (*model.Bill, error) {
	var (
		refunded bills.Bill
		dispatch bool
	)
	err := b.stateMachine.GetBillWithLock(ctx, billUUID, func(uow domain.UnitOfWork, current bills.Bill) error {
		now := b.now()

		switch model.BillStatus(current.Status) {
		case model.BillStatusRefunded:
			refunded = current
			return nil

		case model.BillStatusProcessing:
			submitted, err := chargeSubmitted(ctx, uow, current.ID)
			if err != nil {
				return err
			}
			updated, err := refundProcessingBill(ctx, uow, current, actor, now)
			if err != nil {
				return err
			}
			refunded, dispatch = updated, submitted
			return nil

		case model.BillStatusPaid:
			refundBill, err := insertBill(ctx, uow, refundBillFor(current), actor, workflowRecord{
				Action: "create_refund_bill",
				Actor:  actor,
				Note:   fmt.Sprintf("refund of bill %s", store.ConvertDBBillToModel(current).UUID),
			})
			if err != nil {
				return err
			}

			if _, err := domain.AppendRecord(ctx, uow, current, actor.RecordType(), workflowRecord{
				Action: "refund_bill_created",
				Actor:  actor,
				Note:   store.ConvertDBBillToModel(refundBill).UUID.String(),
			}, nil); err != nil {
				return err
			}

			processing, err := domain.Transition(ctx, uow, refundBill, domain.TransitionRequest{
				Target:     model.BillStatusProcessing,
				RecordType: actor.RecordType(),
				Body:       workflowRecord{Action: "initiate_refund", Actor: actor},
				At:         now,
			})
			if err != nil {
				return err
			}

			updated, err := refundProcessingBill(ctx, uow, processing, actor, now)
			if err != nil {
				return err
			}
			refunded, dispatch = updated, true
			return nil

		default:
			return domain.NewInvalidTransitionError(model.BillStatus(current.Status), model.BillStatusRefunded)
		}
	})
	if err != nil {
		return nil, err
	}

	bill := store.ConvertDBBillToModel(refunded)
	if dispatch && bill.PaymentMethod == model.PaymentMethodPaymentGateway {
		if err := b.dispatcher.DispatchRefund(ctx, bill); err != nil {
			rlog.Error("failed to dispatch refund to payment gateway", "bill_uuid", bill.UUID, "error", err)
		}
	}

	return bill, nil
}

// chargeSubmitted reports whether a charge request was recorded for the bill.
// Charge requests are only recorded under the bill lock while PROCESSING, so
// the answer cannot change while the caller holds the lock.
func chargeSubmitted(ctx context.Context, uow domain.UnitOfWork, billID int64) (bool, error) {
	recs, err := uow.Records().ListProcessingRecordsByBill(ctx, billID)
	if err != nil {
		return false, err
	}
	for _, rec := range recs {
		if model.ProcessingRecordType(rec.ProcessingRecordType) == model.ProcessingRecordTypePaymentGatewayRequest {
			return true, nil
		}
	}
	return false, nil
}

// refundProcessingBill stamps refund_initiated_at, then moves the bill to REFUNDED.
func refundProcessingBill(ctx context.Context, uow domain.UnitOfWork, current bills.Bill, actor model.Actor, now time.Time) (bills.Bill, error) {
	initiated, err := domain.Transition(ctx, uow, current, domain.TransitionRequest{
		Target:          model.BillStatusProcessing,
		RecordType:      actor.RecordType(),
		Body:            workflowRecord{Action: "refund_initiated", Actor: actor},
		RefundInitiated: true,
		At:              now,
	})
	if err != nil {
		return bills.Bill{}, err
	}

	return domain.Transition(ctx, uow, initiated, domain.TransitionRequest{
		Target:     model.BillStatusRefunded,
		RecordType: actor.RecordType(),
		Body:       workflowRecord{Action: "refund_bill", Actor: actor},
		At:         now,
	})
}

func refundBillFor(paid bills.Bill) *model.Bill {
	original := store.ConvertDBBillToModel(paid)
	return &model.Bill{
		Amount:             -original.Amount,
		PayorType:          original.PayorType,
		PayorID:            original.PayorID,
		ProcedureID:        original.ProcedureID,
		CostBreakdownID:    original.CostBreakdownID,
		PaymentMethod:      original.PaymentMethod,
		PaymentMethodID:    original.PaymentMethodID,
		PaymentMethodType:  original.PaymentMethodType,
		PaymentMethodLabel: original.PaymentMethodLabel,
		CardFunding:        original.CardFunding,
		RefundOfBillID:     &original.ID,
		IdempotencyKey:     "refund-" + original.UUID.String(),
	}
}
