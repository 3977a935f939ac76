package store

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"encore.app/billing/store/bills"
	"encore.app/billing/store/records"
)

// Store combines all domain-specific queriers
type Store struct {
	Bills   bills.Querier
	Records records.Querier
}

// NewStore creates a new Store with all domain queriers
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		Bills:   bills.New(db),
		Records: records.New(db),
	}
}

// WithTx returns a Store whose queriers run inside tx
func WithTx(tx pgx.Tx) *Store {
	return &Store{
		Bills:   bills.New(tx),
		Records: records.New(tx),
	}
}
