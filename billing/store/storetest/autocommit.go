package storetest

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"encore.app/billing/store/bills"
	"encore.app/billing/store/records"
)

// autocommit runs each query in a transaction of its own, like the pool
// backed queriers do outside GetBillWithLock and ExecuteInTx.
type autocommit struct {
	s *Store
}

var (
	_ bills.Querier   = autocommit{}
	_ records.Querier = autocommit{}
)

func run[T any](s *Store, fn func(q *queries) (T, error)) (T, error) {
	var out T
	err := s.withTx(func(q *queries) error {
		var err error
		out, err = fn(q)
		return err
	})
	return out, err
}

func (a autocommit) CountBills(ctx context.Context, arg bills.CountBillsParams) (int64, error) {
	return run(a.s, func(q *queries) (int64, error) { return q.CountBills(ctx, arg) })
}

func (a autocommit) CreateBill(ctx context.Context, arg bills.CreateBillParams) (bills.Bill, error) {
	return run(a.s, func(q *queries) (bills.Bill, error) { return q.CreateBill(ctx, arg) })
}

func (a autocommit) GetBill(ctx context.Context, id int64) (bills.Bill, error) {
	return run(a.s, func(q *queries) (bills.Bill, error) { return q.GetBill(ctx, id) })
}

func (a autocommit) GetBillByUUID(ctx context.Context, id pgtype.UUID) (bills.Bill, error) {
	return run(a.s, func(q *queries) (bills.Bill, error) { return q.GetBillByUUID(ctx, id) })
}

func (a autocommit) GetBillByUUIDForUpdate(ctx context.Context, id pgtype.UUID) (bills.Bill, error) {
	return run(a.s, func(q *queries) (bills.Bill, error) { return q.GetBillByUUIDForUpdate(ctx, id) })
}

func (a autocommit) ListBills(ctx context.Context, arg bills.ListBillsParams) ([]bills.Bill, error) {
	return run(a.s, func(q *queries) ([]bills.Bill, error) { return q.ListBills(ctx, arg) })
}

func (a autocommit) ListEmployerBillsReadyForProcessing(ctx context.Context, arg bills.ListEmployerBillsReadyForProcessingParams) ([]bills.Bill, error) {
	return run(a.s, func(q *queries) ([]bills.Bill, error) { return q.ListEmployerBillsReadyForProcessing(ctx, arg) })
}

func (a autocommit) UpdateBillStatus(ctx context.Context, arg bills.UpdateBillStatusParams) (bills.Bill, error) {
	return run(a.s, func(q *queries) (bills.Bill, error) { return q.UpdateBillStatus(ctx, arg) })
}

func (a autocommit) CreateProcessingRecord(ctx context.Context, arg records.CreateProcessingRecordParams) (records.BillProcessingRecord, error) {
	return run(a.s, func(q *queries) (records.BillProcessingRecord, error) { return q.CreateProcessingRecord(ctx, arg) })
}

func (a autocommit) GatewayEventRecordExists(ctx context.Context, arg records.GatewayEventRecordExistsParams) (bool, error) {
	return run(a.s, func(q *queries) (bool, error) { return q.GatewayEventRecordExists(ctx, arg) })
}

func (a autocommit) ListProcessingRecordsByBill(ctx context.Context, billID int64) ([]records.BillProcessingRecord, error) {
	return run(a.s, func(q *queries) ([]records.BillProcessingRecord, error) { return q.ListProcessingRecordsByBill(ctx, billID) })
}
