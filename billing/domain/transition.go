package domain

import (
	"context"
	"encoding/json"
	"time"

	"encore.dev/beta/errs"

	"encore.app/billing/model"
	"encore.app/billing/store"
	"encore.app/billing/store/bills"
	"encore.app/billing/store/records"
)

// TransitionRequest describes one status change and the processing record
// that documents it.
type TransitionRequest struct {
	Target        model.BillStatus
	RecordType    model.ProcessingRecordType
	Body          any
	TransactionID *string
	// ErrorType is only used when Target is FAILED; nil means UNKNOWN.
	ErrorType *model.BillErrorType
	// RefundInitiated stamps refund_initiated_at when it is not set yet.
	RefundInitiated bool
	At              time.Time
}

// Transition validates current -> req.Target, persists the new status with
// its timestamp and appends a processing record, all through uow.
// It is the only code path that writes a bill's status.
func Transition(ctx context.Context, uow UnitOfWork, current bills.Bill, req TransitionRequest) (bills.Bill, error) {
	if err := ValidateTransition(model.BillStatus(current.Status), req.Target); err != nil {
		return bills.Bill{}, err
	}

	updated, err := uow.Bills().UpdateBillStatus(ctx, statusUpdateParams(current, req))
	if err != nil {
		return bills.Bill{}, &errs.Error{Code: errs.Internal, Message: "failed to update bill status"}
	}

	if _, err := AppendRecord(ctx, uow, updated, req.RecordType, req.Body, req.TransactionID); err != nil {
		return bills.Bill{}, err
	}

	return updated, nil
}

// AppendRecord adds a processing record carrying the bill's current status.
func AppendRecord(ctx context.Context, uow UnitOfWork, bill bills.Bill, recordType model.ProcessingRecordType, body any, transactionID *string) (records.BillProcessingRecord, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return records.BillProcessingRecord{}, &errs.Error{Code: errs.Internal, Message: "failed to marshal processing record body"}
	}

	record, err := uow.Records().CreateProcessingRecord(ctx, records.CreateProcessingRecordParams{
		BillID:               bill.ID,
		ProcessingRecordType: string(recordType),
		Body:                 payload,
		BillStatus:           bill.Status,
		TransactionID:        store.Text(transactionID),
	})
	if err != nil {
		return records.BillProcessingRecord{}, &errs.Error{Code: errs.Internal, Message: "failed to create processing record"}
	}
	return record, nil
}

func statusUpdateParams(current bills.Bill, req TransitionRequest) bills.UpdateBillStatusParams {
	at := store.Timestamptz(&req.At)
	params := bills.UpdateBillStatusParams{
		ID:                current.ID,
		Status:            string(req.Target),
		ProcessingAt:      current.ProcessingAt,
		PaidAt:            current.PaidAt,
		RefundedAt:        current.RefundedAt,
		FailedAt:          current.FailedAt,
		CancelledAt:       current.CancelledAt,
		RefundInitiatedAt: current.RefundInitiatedAt,
	}

	if req.RefundInitiated && !params.RefundInitiatedAt.Valid {
		params.RefundInitiatedAt = at
	}

	if req.Target == model.BillStatusFailed {
		params.ErrorType = current.ErrorType
		if req.ErrorType != nil {
			params.ErrorType = store.Text((*string)(req.ErrorType))
		} else if !params.ErrorType.Valid {
			params.ErrorType = store.Text((*string)(ptr(model.BillErrorTypeUnknown)))
		}
	}

	// Same-status transitions are no-ops for the lifecycle timestamps
	if model.BillStatus(current.Status) == req.Target {
		return params
	}

	switch req.Target {
	case model.BillStatusProcessing:
		params.ProcessingAt = at
	case model.BillStatusPaid:
		params.PaidAt = at
	case model.BillStatusFailed:
		params.FailedAt = at
	case model.BillStatusCancelled:
		params.CancelledAt = at
	case model.BillStatusRefunded:
		params.RefundedAt = at
		if !params.RefundInitiatedAt.Valid {
			params.RefundInitiatedAt = at
		}
	}
	return params
}

func marshalBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return []byte("{}"), nil
	case json.RawMessage:
		if len(b) == 0 {
			return []byte("{}"), nil
		}
		return b, nil
	default:
		return json.Marshal(b)
	}
}

func ptr[T any](v T) *T {
	return &v
}
