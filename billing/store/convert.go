package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"encore.app/billing/model"
	"encore.app/billing/store/bills"
	"encore.app/billing/store/records"
)

// ConvertDBBillToModel converts a database Bill to a domain model Bill
func ConvertDBBillToModel(dbBill bills.Bill) *model.Bill {
	bill := &model.Bill{
		ID:                           dbBill.ID,
		UUID:                         uuid.UUID(dbBill.Uuid.Bytes),
		Amount:                       dbBill.Amount,
		LastCalculatedFee:            int64Ptr(dbBill.LastCalculatedFee),
		PayorType:                    model.PayorType(dbBill.PayorType),
		PayorID:                      dbBill.PayorID,
		ProcedureID:                  dbBill.ProcedureID,
		CostBreakdownID:              dbBill.CostBreakdownID,
		Status:                       model.BillStatus(dbBill.Status),
		PaymentMethod:                model.PaymentMethod(dbBill.PaymentMethod),
		PaymentMethodID:              textPtr(dbBill.PaymentMethodID),
		PaymentMethodType:            textPtr(dbBill.PaymentMethodType),
		PaymentMethodLabel:           textPtr(dbBill.PaymentMethodLabel),
		ProcessingAt:                 TimePtr(dbBill.ProcessingAt),
		PaidAt:                       TimePtr(dbBill.PaidAt),
		RefundedAt:                   TimePtr(dbBill.RefundedAt),
		FailedAt:                     TimePtr(dbBill.FailedAt),
		CancelledAt:                  TimePtr(dbBill.CancelledAt),
		RefundInitiatedAt:            TimePtr(dbBill.RefundInitiatedAt),
		ProcessingScheduledAtOrAfter: TimePtr(dbBill.ProcessingScheduledAtOrAfter),
		RefundOfBillID:               int64Ptr(dbBill.RefundOfBillID),
		IdempotencyKey:               dbBill.IdempotencyKey,
		CreatedAt:                    dbBill.CreatedAt.Time,
		UpdatedAt:                    dbBill.UpdatedAt.Time,
	}

	if dbBill.CardFunding.Valid {
		funding := model.CardFunding(dbBill.CardFunding.String)
		bill.CardFunding = &funding
	}

	if dbBill.ErrorType.Valid {
		errorType := model.BillErrorType(dbBill.ErrorType.String)
		bill.ErrorType = &errorType
	}

	return bill
}

// ConvertDBRecordToModel converts a database processing record to a domain model record
func ConvertDBRecordToModel(dbRecord records.BillProcessingRecord) *model.BillProcessingRecord {
	record := &model.BillProcessingRecord{
		ID:                   dbRecord.ID,
		BillID:               dbRecord.BillID,
		ProcessingRecordType: model.ProcessingRecordType(dbRecord.ProcessingRecordType),
		Body:                 json.RawMessage(dbRecord.Body),
		BillStatus:           model.BillStatus(dbRecord.BillStatus),
		TransactionID:        textPtr(dbRecord.TransactionID),
		CreatedAt:            dbRecord.CreatedAt.Time,
	}
	if len(record.Body) == 0 {
		record.Body = json.RawMessage("{}")
	}
	return record
}

func UUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func Timestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func Text(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func Int8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func TimePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	v := t.String
	return &v
}

func int64Ptr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
