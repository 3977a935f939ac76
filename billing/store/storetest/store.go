// Package storetest provides an in-memory bill store that behaves like the
// Postgres schema closely enough for scenario tests: row locks serialize
// whole transactions, failed transactions roll back, and the unique
// constraints on bills and gateway event records are enforced.
package storetest

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"encore.dev/beta/errs"

	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store/bills"
	"encore.app/billing/store/records"
)

// Store is an in-memory replacement for the bills database.
type Store struct {
	mu    sync.Mutex
	state *state
	Now   func() time.Time
}

type state struct {
	bills        []bills.Bill
	records      []records.BillProcessingRecord
	nextBillID   int64
	nextRecordID int64
}

func (s *state) clone() *state {
	c := &state{
		bills:        make([]bills.Bill, len(s.bills)),
		records:      make([]records.BillProcessingRecord, len(s.records)),
		nextBillID:   s.nextBillID,
		nextRecordID: s.nextRecordID,
	}
	copy(c.bills, s.bills)
	copy(c.records, s.records)
	return c
}

// New returns an empty store.
func New() *Store {
	return &Store{
		state: &state{nextBillID: 1, nextRecordID: 1},
		Now:   time.Now,
	}
}

var _ domain.StateMachine = (*Store)(nil)

// Bills returns a querier that runs every call in its own transaction.
func (s *Store) Bills() bills.Querier { return autocommit{s} }

// Records returns a querier that runs every call in its own transaction.
func (s *Store) Records() records.Querier { return autocommit{s} }

// Snapshot returns the committed bills and records.
func (s *Store) Snapshot() ([]bills.Bill, []records.BillProcessingRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.state.clone()
	return c.bills, c.records
}

// RecordsFor returns the committed records of one bill in insertion order.
func (s *Store) RecordsFor(billID int64) []records.BillProcessingRecord {
	_, all := s.Snapshot()
	var out []records.BillProcessingRecord
	for _, r := range all {
		if r.BillID == billID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) withTx(fn func(q *queries) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := &queries{state: s.state.clone(), now: s.Now}
	if err := fn(q); err != nil {
		return err
	}
	s.state = q.state
	return nil
}

func (s *Store) GetBillWithLock(ctx context.Context, billUUID uuid.UUID, businessLogic func(uow domain.UnitOfWork, current bills.Bill) error) error {
	return s.withTx(func(q *queries) error {
		current, err := q.GetBillByUUIDForUpdate(ctx, pgtype.UUID{Bytes: billUUID, Valid: true})
		if err != nil {
			return &errs.Error{Code: errs.NotFound, Message: "bill not found"}
		}
		return businessLogic(q, current)
	})
}

func (s *Store) ExecuteInTx(ctx context.Context, businessLogic func(uow domain.UnitOfWork) error) error {
	return s.withTx(func(q *queries) error {
		return businessLogic(q)
	})
}

// queries works on a private copy of the state owned by one transaction.
type queries struct {
	state *state
	now   func() time.Time
}

func (q *queries) Bills() bills.Querier     { return q }
func (q *queries) Records() records.Querier { return q }

func (q *queries) CountBills(ctx context.Context, arg bills.CountBillsParams) (int64, error) {
	var n int64
	for _, b := range q.state.bills {
		if matchesFilter(b, arg.Status, arg.PayorType) {
			n++
		}
	}
	return n, nil
}

func (q *queries) CreateBill(ctx context.Context, arg bills.CreateBillParams) (bills.Bill, error) {
	for _, b := range q.state.bills {
		if b.Uuid == arg.Uuid || b.IdempotencyKey == arg.IdempotencyKey {
			return bills.Bill{}, &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "bills_idempotency_key_key"}
		}
	}

	now := pgtype.Timestamptz{Time: q.now(), Valid: true}
	bill := bills.Bill{
		ID:                           q.state.nextBillID,
		Uuid:                         arg.Uuid,
		Amount:                       arg.Amount,
		LastCalculatedFee:            arg.LastCalculatedFee,
		PayorType:                    arg.PayorType,
		PayorID:                      arg.PayorID,
		ProcedureID:                  arg.ProcedureID,
		CostBreakdownID:              arg.CostBreakdownID,
		Status:                       arg.Status,
		PaymentMethod:                arg.PaymentMethod,
		PaymentMethodID:              arg.PaymentMethodID,
		PaymentMethodType:            arg.PaymentMethodType,
		PaymentMethodLabel:           arg.PaymentMethodLabel,
		CardFunding:                  arg.CardFunding,
		ProcessingScheduledAtOrAfter: arg.ProcessingScheduledAtOrAfter,
		RefundOfBillID:               arg.RefundOfBillID,
		IdempotencyKey:               arg.IdempotencyKey,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}
	q.state.nextBillID++
	q.state.bills = append(q.state.bills, bill)
	return bill, nil
}

func (q *queries) GetBill(ctx context.Context, id int64) (bills.Bill, error) {
	for _, b := range q.state.bills {
		if b.ID == id {
			return b, nil
		}
	}
	return bills.Bill{}, pgx.ErrNoRows
}

func (q *queries) GetBillByUUID(ctx context.Context, id pgtype.UUID) (bills.Bill, error) {
	for _, b := range q.state.bills {
		if b.Uuid == id {
			return b, nil
		}
	}
	return bills.Bill{}, pgx.ErrNoRows
}

// GetBillByUUIDForUpdate needs no extra locking: the transaction already
// holds the store mutex.
func (q *queries) GetBillByUUIDForUpdate(ctx context.Context, id pgtype.UUID) (bills.Bill, error) {
	return q.GetBillByUUID(ctx, id)
}

func (q *queries) ListBills(ctx context.Context, arg bills.ListBillsParams) ([]bills.Bill, error) {
	var out []bills.Bill
	for i := len(q.state.bills) - 1; i >= 0; i-- {
		if matchesFilter(q.state.bills[i], arg.Status, arg.PayorType) {
			out = append(out, q.state.bills[i])
		}
	}
	return page(out, arg.Limit, arg.Offset), nil
}

// matchesFilter treats a NULL filter as matching every bill.
func matchesFilter(b bills.Bill, status, payorType pgtype.Text) bool {
	if status.Valid && b.Status != status.String {
		return false
	}
	if payorType.Valid && b.PayorType != payorType.String {
		return false
	}
	return true
}

func (q *queries) ListEmployerBillsReadyForProcessing(ctx context.Context, arg bills.ListEmployerBillsReadyForProcessingParams) ([]bills.Bill, error) {
	var out []bills.Bill
	for _, b := range q.state.bills {
		status := model.BillStatus(b.Status)
		if b.PayorType != string(model.PayorTypeEmployer) ||
			(status != model.BillStatusNew && status != model.BillStatusFailed) ||
			!b.ProcessingScheduledAtOrAfter.Valid ||
			b.ProcessingScheduledAtOrAfter.Time.After(arg.Now.Time) ||
			!afterCursor(b, arg.AfterScheduledAt, arg.AfterID) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].ProcessingScheduledAtOrAfter.Time, out[j].ProcessingScheduledAtOrAfter.Time
		if !a.Equal(b) {
			return a.Before(b)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, arg.BatchSize, 0), nil
}

// afterCursor compares (processing_scheduled_at_or_after, id) row-wise.
func afterCursor(b bills.Bill, at pgtype.Timestamptz, id int64) bool {
	switch {
	case at.InfinityModifier == pgtype.NegativeInfinity:
		return true
	case at.InfinityModifier == pgtype.Infinity:
		return false
	}
	scheduled := b.ProcessingScheduledAtOrAfter.Time
	if !scheduled.Equal(at.Time) {
		return scheduled.After(at.Time)
	}
	return b.ID > id
}

func (q *queries) UpdateBillStatus(ctx context.Context, arg bills.UpdateBillStatusParams) (bills.Bill, error) {
	for i, b := range q.state.bills {
		if b.ID != arg.ID {
			continue
		}
		b.Status = arg.Status
		b.ProcessingAt = arg.ProcessingAt
		b.PaidAt = arg.PaidAt
		b.RefundedAt = arg.RefundedAt
		b.FailedAt = arg.FailedAt
		b.CancelledAt = arg.CancelledAt
		b.RefundInitiatedAt = arg.RefundInitiatedAt
		b.ErrorType = arg.ErrorType
		b.UpdatedAt = pgtype.Timestamptz{Time: q.now(), Valid: true}
		q.state.bills[i] = b
		return b, nil
	}
	return bills.Bill{}, pgx.ErrNoRows
}

func (q *queries) CreateProcessingRecord(ctx context.Context, arg records.CreateProcessingRecordParams) (records.BillProcessingRecord, error) {
	if arg.ProcessingRecordType == string(model.ProcessingRecordTypePaymentGatewayEvent) && arg.TransactionID.Valid {
		eventType := bodyEventType(arg.Body)
		for _, r := range q.state.records {
			if r.BillID == arg.BillID &&
				r.ProcessingRecordType == arg.ProcessingRecordType &&
				r.TransactionID == arg.TransactionID &&
				bodyEventType(r.Body) == eventType {
				return records.BillProcessingRecord{}, &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "ux_bill_processing_records_gateway_event"}
			}
		}
	}

	record := records.BillProcessingRecord{
		ID:                   q.state.nextRecordID,
		BillID:               arg.BillID,
		ProcessingRecordType: arg.ProcessingRecordType,
		Body:                 append([]byte(nil), arg.Body...),
		BillStatus:           arg.BillStatus,
		TransactionID:        arg.TransactionID,
		CreatedAt:            pgtype.Timestamptz{Time: q.now(), Valid: true},
	}
	q.state.nextRecordID++
	q.state.records = append(q.state.records, record)
	return record, nil
}

func (q *queries) GatewayEventRecordExists(ctx context.Context, arg records.GatewayEventRecordExistsParams) (bool, error) {
	for _, r := range q.state.records {
		if r.BillID != arg.BillID || r.TransactionID != arg.TransactionID {
			continue
		}
		switch model.ProcessingRecordType(r.ProcessingRecordType) {
		case model.ProcessingRecordTypePaymentGatewayEvent, model.ProcessingRecordTypeManualBillingCorrection:
			if bodyEventType(r.Body) == arg.EventType {
				return true, nil
			}
		}
	}
	return false, nil
}

func (q *queries) ListProcessingRecordsByBill(ctx context.Context, billID int64) ([]records.BillProcessingRecord, error) {
	var out []records.BillProcessingRecord
	for _, r := range q.state.records {
		if r.BillID == billID {
			out = append(out, r)
		}
	}
	return out, nil
}

func bodyEventType(body []byte) string {
	var envelope struct {
		EventType string `json:"event_type"`
	}
	_ = json.Unmarshal(body, &envelope)
	return envelope.EventType
}

func page(in []bills.Bill, limit, offset int32) []bills.Bill {
	if int(offset) >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && int(limit) < len(in) {
		in = in[:limit]
	}
	return in
}
