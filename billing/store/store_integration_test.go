//go:build integration

package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"encore.app/billing/store"
	"encore.app/billing/store/bills"
	"encore.app/billing/store/records"
)

// setupPostgres starts a PostgreSQL container with the billing migrations applied.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("billing_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(cleanupCtx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	runMigrations(t, pool)
	return pool
}

func runMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	files, err := filepath.Glob(filepath.Join("..", "db", "migrations", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations found")
	sort.Strings(files)

	for _, path := range files {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = pool.Exec(context.Background(), string(content))
		require.NoError(t, err, "migration %s failed", filepath.Base(path))
	}
}

func billParams(payorType, status string, scheduledAt *time.Time) bills.CreateBillParams {
	id := uuid.New()
	return bills.CreateBillParams{
		Uuid:                         store.UUID(id),
		Amount:                       12500,
		PayorType:                    payorType,
		PayorID:                      42,
		ProcedureID:                  7,
		CostBreakdownID:              9,
		Status:                       status,
		PaymentMethod:                "PAYMENT_GATEWAY",
		ProcessingScheduledAtOrAfter: store.Timestamptz(scheduledAt),
		IdempotencyKey:               "key-" + id.String(),
	}
}

func mustInsertBill(t *testing.T, q bills.Querier, arg bills.CreateBillParams) bills.Bill {
	t.Helper()
	bill, err := q.CreateBill(context.Background(), arg)
	require.NoError(t, err)
	return bill
}

func requirePgCode(t *testing.T, err error, code string) *pgconn.PgError {
	t.Helper()
	require.Error(t, err)
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr), "expected a PostgreSQL error, got %v", err)
	assert.Equal(t, code, pgErr.Code)
	return pgErr
}

func ids(list []bills.Bill) []int64 {
	out := make([]int64, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func TestBillQueries_Postgres(t *testing.T) {
	pool := setupPostgres(t)
	q := store.NewStore(pool).Bills
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	first := mustInsertBill(t, q, billParams("EMPLOYER", "NEW", at(-3*time.Hour)))
	failed := mustInsertBill(t, q, billParams("EMPLOYER", "FAILED", at(-2*time.Hour)))
	tiedA := mustInsertBill(t, q, billParams("EMPLOYER", "NEW", at(-time.Hour)))
	tiedB := mustInsertBill(t, q, billParams("EMPLOYER", "NEW", at(-time.Hour)))
	mustInsertBill(t, q, billParams("EMPLOYER", "PROCESSING", at(-5*time.Hour)))
	mustInsertBill(t, q, billParams("EMPLOYER", "NEW", at(time.Hour)))
	mustInsertBill(t, q, billParams("EMPLOYER", "NEW", nil))
	member := mustInsertBill(t, q, billParams("MEMBER", "NEW", at(-4*time.Hour)))

	t.Run("ready_for_processing_pages_by_cursor", func(t *testing.T) {
		start := bills.ListEmployerBillsReadyForProcessingParams{
			Now:              pgtype.Timestamptz{Time: now, Valid: true},
			AfterScheduledAt: pgtype.Timestamptz{InfinityModifier: pgtype.NegativeInfinity, Valid: true},
			BatchSize:        2,
		}

		page, err := q.ListEmployerBillsReadyForProcessing(ctx, start)
		require.NoError(t, err)
		assert.Equal(t, []int64{first.ID, failed.ID}, ids(page))

		next := start
		next.AfterScheduledAt = page[1].ProcessingScheduledAtOrAfter
		next.AfterID = page[1].ID
		page, err = q.ListEmployerBillsReadyForProcessing(ctx, next)
		require.NoError(t, err)
		assert.Equal(t, []int64{tiedA.ID, tiedB.ID}, ids(page))

		next.AfterScheduledAt = page[1].ProcessingScheduledAtOrAfter
		next.AfterID = page[1].ID
		page, err = q.ListEmployerBillsReadyForProcessing(ctx, next)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("cursor_breaks_schedule_ties_by_id", func(t *testing.T) {
		page, err := q.ListEmployerBillsReadyForProcessing(ctx, bills.ListEmployerBillsReadyForProcessingParams{
			Now:              pgtype.Timestamptz{Time: now, Valid: true},
			AfterScheduledAt: tiedA.ProcessingScheduledAtOrAfter,
			AfterID:          tiedA.ID,
			BatchSize:        10,
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{tiedB.ID}, ids(page))
	})

	t.Run("list_and_count_filters", func(t *testing.T) {
		text := func(s string) pgtype.Text { return pgtype.Text{String: s, Valid: true} }

		testCases := []struct {
			name          string
			status        pgtype.Text
			payorType     pgtype.Text
			expectedCount int64
		}{
			{name: "unfiltered", expectedCount: 8},
			{name: "status", status: text("NEW"), expectedCount: 6},
			{name: "payor_type", payorType: text("EMPLOYER"), expectedCount: 7},
			{name: "both", status: text("NEW"), payorType: text("MEMBER"), expectedCount: 1},
			{name: "none_match", status: text("REFUNDED"), expectedCount: 0},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				count, err := q.CountBills(ctx, bills.CountBillsParams{Status: tc.status, PayorType: tc.payorType})
				require.NoError(t, err)
				assert.Equal(t, tc.expectedCount, count)

				list, err := q.ListBills(ctx, bills.ListBillsParams{Status: tc.status, PayorType: tc.payorType, Limit: 100})
				require.NoError(t, err)
				assert.Len(t, list, int(tc.expectedCount))
			})
		}

		list, err := q.ListBills(ctx, bills.ListBillsParams{Status: text("NEW"), PayorType: text("MEMBER"), Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{member.ID}, ids(list))

		list, err = q.ListBills(ctx, bills.ListBillsParams{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Greater(t, list[0].ID, list[1].ID)
	})

	t.Run("idempotency_key_is_unique", func(t *testing.T) {
		dup := billParams("MEMBER", "NEW", nil)
		dup.IdempotencyKey = first.IdempotencyKey

		_, err := q.CreateBill(ctx, dup)

		pgErr := requirePgCode(t, err, pgerrcode.UniqueViolation)
		assert.Equal(t, "bills_idempotency_key_key", pgErr.ConstraintName)
	})

	t.Run("error_type_requires_failed_status", func(t *testing.T) {
		_, err := q.UpdateBillStatus(ctx, bills.UpdateBillStatusParams{
			ID:        first.ID,
			Status:    "NEW",
			ErrorType: pgtype.Text{String: "card_declined", Valid: true},
		})

		requirePgCode(t, err, pgerrcode.CheckViolation)
	})
}

func TestRecordQueries_Postgres(t *testing.T) {
	pool := setupPostgres(t)
	s := store.NewStore(pool)
	ctx := context.Background()
	bill := mustInsertBill(t, s.Bills, billParams("MEMBER", "PROCESSING", nil))

	insert := func(recordType, body, transactionID string) (records.BillProcessingRecord, error) {
		return s.Records.CreateProcessingRecord(ctx, records.CreateProcessingRecordParams{
			BillID:               bill.ID,
			ProcessingRecordType: recordType,
			Body:                 []byte(body),
			BillStatus:           bill.Status,
			TransactionID:        pgtype.Text{String: transactionID, Valid: transactionID != ""},
		})
	}

	_, err := insert("payment_gateway_event", `{"event_type":"charge.succeeded"}`, "ch_1")
	require.NoError(t, err)

	t.Run("duplicate_gateway_event_is_rejected", func(t *testing.T) {
		_, err := insert("payment_gateway_event", `{"event_type":"charge.succeeded","extra":true}`, "ch_1")

		pgErr := requirePgCode(t, err, pgerrcode.UniqueViolation)
		assert.Equal(t, "ux_bill_processing_records_gateway_event", pgErr.ConstraintName)
	})

	t.Run("other_event_for_same_transaction_is_accepted", func(t *testing.T) {
		_, err := insert("payment_gateway_event", `{"event_type":"charge.processing"}`, "ch_1")
		require.NoError(t, err)
	})

	t.Run("index_only_covers_gateway_events", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := insert("payment_gateway_request", `{"event_type":"charge.succeeded"}`, "ch_1")
			require.NoError(t, err)
		}
	})

	_, err = insert("manual_billing_correction", `{"event_type":"charge.failed"}`, "ch_3")
	require.NoError(t, err)
	_, err = insert("payment_gateway_response", `{"event_type":"charge.refunded"}`, "ch_4")
	require.NoError(t, err)

	t.Run("gateway_event_record_exists", func(t *testing.T) {
		testCases := []struct {
			name          string
			transactionID string
			eventType     string
			expected      bool
		}{
			{name: "recorded_event", transactionID: "ch_1", eventType: "charge.succeeded", expected: true},
			{name: "other_event_type", transactionID: "ch_1", eventType: "charge.failed", expected: false},
			{name: "other_transaction", transactionID: "ch_2", eventType: "charge.succeeded", expected: false},
			{name: "manual_correction_counts", transactionID: "ch_3", eventType: "charge.failed", expected: true},
			{name: "gateway_response_does_not_count", transactionID: "ch_4", eventType: "charge.refunded", expected: false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				exists, err := s.Records.GatewayEventRecordExists(ctx, records.GatewayEventRecordExistsParams{
					BillID:        bill.ID,
					TransactionID: pgtype.Text{String: tc.transactionID, Valid: true},
					EventType:     tc.eventType,
				})
				require.NoError(t, err)
				assert.Equal(t, tc.expected, exists)
			})
		}
	})

	t.Run("records_listed_in_insertion_order", func(t *testing.T) {
		list, err := s.Records.ListProcessingRecordsByBill(ctx, bill.ID)
		require.NoError(t, err)

		var types []string
		for _, rec := range list {
			types = append(types, rec.ProcessingRecordType)
		}
		assert.Equal(t, []string{
			"payment_gateway_event",
			"payment_gateway_event",
			"payment_gateway_request",
			"payment_gateway_request",
			"manual_billing_correction",
			"payment_gateway_response",
		}, types)
	})
}

func TestGetBillByUUIDForUpdate_Postgres(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	bill := mustInsertBill(t, store.NewStore(pool).Bills, billParams("MEMBER", "PROCESSING", nil))

	holder, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer holder.Rollback(ctx)
	_, err = store.WithTx(holder).Bills.GetBillByUUIDForUpdate(ctx, bill.Uuid)
	require.NoError(t, err)

	waiter, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer waiter.Rollback(ctx)
	_, err = waiter.Exec(ctx, "SET LOCAL lock_timeout = '200ms'")
	require.NoError(t, err)

	_, err = store.WithTx(waiter).Bills.GetBillByUUIDForUpdate(ctx, bill.Uuid)
	requirePgCode(t, err, pgerrcode.LockNotAvailable)

	// A plain read is not blocked by the row lock.
	_, err = store.NewStore(pool).Bills.GetBillByUUID(ctx, bill.Uuid)
	require.NoError(t, err)

	require.NoError(t, holder.Commit(ctx))

	next, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer next.Rollback(ctx)
	locked, err := store.WithTx(next).Bills.GetBillByUUIDForUpdate(ctx, bill.Uuid)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, locked.ID)
}
