package bill

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"encore.dev/beta/errs"

	"encore.app/billing/model"
	"encore.app/billing/store"
	"encore.app/billing/store/bills"
)

// ListBillsFilter narrows ListBills. Nil fields match every bill.
type ListBillsFilter struct {
	Status    *model.BillStatus
	PayorType *model.PayorType
	Limit     int32
	Offset    int32
}

func (f ListBillsFilter) statusText() pgtype.Text {
	if f.Status == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: string(*f.Status), Valid: true}
}

func (f ListBillsFilter) payorTypeText() pgtype.Text {
	if f.PayorType == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: string(*f.PayorType), Valid: true}
}

// ListBills returns one page of bills, newest first, and the number of bills
// matching the filter across all pages.
func (b *business) ListBills(ctx context.Context, filter ListBillsFilter) ([]*model.Bill, int64, error) {
	dbBills, err := b.billRepo.ListBills(ctx, bills.ListBillsParams{
		Status:    filter.statusText(),
		PayorType: filter.payorTypeText(),
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	})
	if err != nil {
		return nil, 0, &errs.Error{Code: errs.Internal, Message: "failed to list bills"}
	}

	totalCount, err := b.billRepo.CountBills(ctx, bills.CountBillsParams{
		Status:    filter.statusText(),
		PayorType: filter.payorTypeText(),
	})
	if err != nil {
		return nil, 0, &errs.Error{Code: errs.Internal, Message: "failed to count bills"}
	}

	billList := make([]*model.Bill, len(dbBills))
	for i, dbBill := range dbBills {
		billList[i] = store.ConvertDBBillToModel(dbBill)
	}

	return billList, totalCount, nil
}
