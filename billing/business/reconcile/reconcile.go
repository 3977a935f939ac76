package reconcile

import (
	"context"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store"
	"encore.app/billing/store/bills"
	"encore.app/billing/store/records"
)

// Outcome tells the webhook what happened to a gateway event.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeRejected  Outcome = "rejected"
)

// Result is returned for applied and duplicate events. Rejected events
// return the result together with the transition error.
type Result struct {
	Outcome Outcome
	Bill    *model.Bill
}

// Business applies validated payment gateway events to bills.
type Business interface {
	HandleEvent(ctx context.Context, msg domain.PaymentGatewayEventMessage) (*Result, error)
}

type business struct {
	stateMachine domain.StateMachine
	now          func() time.Time
}

// NewReconcileBusiness creates the gateway event reconciler
func NewReconcileBusiness(stateMachine domain.StateMachine) Business {
	return &business{
		stateMachine: stateMachine,
		now:          time.Now,
	}
}

// correctionRecord is the body of a manual_billing_correction record left
// behind when the gateway reports an outcome the bill cannot take.
func correctionRecord(msg domain.PaymentGatewayEventMessage, rejection error) map[string]any {
	body := msg.RecordBody()
	body["rejection"] = rejection.Error()
	return body
}

// HandleEvent locks the referenced bill and moves it to the status implied
// by the event type. Redelivered events (same bill, transaction and event
// type) are acknowledged without writing anything. Events the lifecycle
// rejects are kept as manual_billing_correction records and the transition
// error is returned after that record is committed.
func (b *business) HandleEvent(ctx context.Context, msg domain.PaymentGatewayEventMessage) (*Result, error) {
	event, err := resolveEvent(msg)
	if err != nil {
		return nil, err
	}

	var (
		result    = &Result{Outcome: OutcomeApplied}
		rejection error
		billRow   bills.Bill
	)
	err = b.stateMachine.GetBillWithLock(ctx, event.billUUID, func(uow domain.UnitOfWork, current bills.Bill) error {
		seen, err := uow.Records().GatewayEventRecordExists(ctx, records.GatewayEventRecordExistsParams{
			BillID:        current.ID,
			TransactionID: store.Text(&event.transactionID),
			EventType:     string(msg.EventType()),
		})
		if err != nil {
			return &errs.Error{Code: errs.Internal, Message: "failed to look up gateway event"}
		}
		if seen {
			rlog.Info("duplicate gateway event ignored",
				"bill_uuid", event.billUUID,
				"transaction_id", event.transactionID,
				"event_type", msg.EventType())
			result.Outcome = OutcomeDuplicate
			billRow = current
			return nil
		}

		updated, err := domain.Transition(ctx, uow, current, domain.TransitionRequest{
			Target:        event.target,
			RecordType:    model.ProcessingRecordTypePaymentGatewayEvent,
			Body:          msg.RecordBody(),
			TransactionID: &event.transactionID,
			ErrorType:     event.errorType,
			At:            b.now(),
		})
		if err == nil {
			billRow = updated
			return nil
		}
		if !domain.IsInvalidTransition(err) {
			return err
		}

		if _, err := domain.AppendRecord(ctx, uow, current, model.ProcessingRecordTypeManualBillingCorrection,
			correctionRecord(msg, err), &event.transactionID); err != nil {
			return err
		}
		result.Outcome = OutcomeRejected
		rejection = err
		billRow = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Bill = store.ConvertDBBillToModel(billRow)
	if rejection != nil {
		rlog.Warn("gateway event rejected by bill lifecycle",
			"bill_uuid", event.billUUID,
			"transaction_id", event.transactionID,
			"event_type", msg.EventType(),
			"status", billRow.Status)
		return result, rejection
	}
	return result, nil
}
