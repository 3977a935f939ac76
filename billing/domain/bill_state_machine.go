package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/billing/store"
	"encore.app/billing/store/bills"
	"encore.app/billing/store/records"
)

// UnitOfWork exposes the queriers bound to one open transaction.
type UnitOfWork interface {
	Bills() bills.Querier
	Records() records.Querier
}

// StateMachine owns transaction boundaries for every bill mutation
type StateMachine interface {
	// GetBillWithLock runs businessLogic with the bill row locked (SELECT ... FOR UPDATE).
	// The transaction commits when businessLogic returns nil and rolls back otherwise.
	GetBillWithLock(ctx context.Context, billUUID uuid.UUID, businessLogic func(uow UnitOfWork, current bills.Bill) error) error

	// ExecuteInTx runs businessLogic inside a transaction without locking an existing bill.
	ExecuteInTx(ctx context.Context, businessLogic func(uow UnitOfWork) error) error
}

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type unitOfWork struct {
	store *store.Store
}

func (u *unitOfWork) Bills() bills.Querier     { return u.store.Bills }
func (u *unitOfWork) Records() records.Querier { return u.store.Records }

// BillStateMachine implements StateMachine on top of a pgx connection pool
type BillStateMachine struct {
	db TxBeginner
}

// NewBillStateMachine creates a new bill state machine
func NewBillStateMachine(db TxBeginner) *BillStateMachine {
	return &BillStateMachine{db: db}
}

var _ StateMachine = (*BillStateMachine)(nil)

// withTx runs fn in a fresh transaction; every exit path other than a
// successful commit rolls back.
func (sm *BillStateMachine) withTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	tx, err := sm.db.Begin(ctx)
	if err != nil {
		return &errs.Error{Code: errs.Internal, Message: "failed to start transaction"}
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			rlog.Error("failed to roll back bill transaction", "error", rbErr)
		}
	}()

	if err := fn(&unitOfWork{store: store.WithTx(tx)}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return &errs.Error{Code: errs.Internal, Message: "failed to commit bill transaction"}
	}
	return nil
}

func (sm *BillStateMachine) GetBillWithLock(ctx context.Context, billUUID uuid.UUID, businessLogic func(uow UnitOfWork, current bills.Bill) error) error {
	return sm.withTx(ctx, func(uow UnitOfWork) error {
		currentBill, err := uow.Bills().GetBillByUUIDForUpdate(ctx, store.UUID(billUUID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &errs.Error{Code: errs.NotFound, Message: "bill not found"}
			}
			return &errs.Error{Code: errs.Internal, Message: "failed to lock bill"}
		}

		// The row stays locked until the transaction commits or rolls back
		return businessLogic(uow, currentBill)
	})
}

func (sm *BillStateMachine) ExecuteInTx(ctx context.Context, businessLogic func(uow UnitOfWork) error) error {
	return sm.withTx(ctx, businessLogic)
}
