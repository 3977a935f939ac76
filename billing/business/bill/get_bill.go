package bill

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"encore.dev/beta/errs"

	"encore.app/billing/model"
	"encore.app/billing/store"
)

// GetBill handles the business logic for retrieving a bill by UUID
func (b *business) GetBill(ctx context.Context, billUUID uuid.UUID) (*model.Bill, error) {
	dbBill, err := b.billRepo.GetBillByUUID(ctx, store.UUID(billUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &errs.Error{Code: errs.NotFound, Message: "bill not found"}
		}
		return nil, &errs.Error{Code: errs.Internal, Message: "failed to get bill"}
	}

	return store.ConvertDBBillToModel(dbBill), nil
}

// ListProcessingRecords returns the audit trail of a bill, oldest first
func (b *business) ListProcessingRecords(ctx context.Context, billUUID uuid.UUID) ([]*model.BillProcessingRecord, error) {
	bill, err := b.GetBill(ctx, billUUID)
	if err != nil {
		return nil, err
	}

	dbRecords, err := b.recordRepo.ListProcessingRecordsByBill(ctx, bill.ID)
	if err != nil {
		return nil, &errs.Error{Code: errs.Internal, Message: "failed to list processing records"}
	}

	result := make([]*model.BillProcessingRecord, len(dbRecords))
	for i, dbRecord := range dbRecords {
		result[i] = store.ConvertDBRecordToModel(dbRecord)
	}
	return result, nil
}
