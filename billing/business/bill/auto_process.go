package bill

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store"
	"encore.app/billing/store/bills"
)

// AutoProcessResult summarizes one auto-processing sweep.
type AutoProcessResult struct {
	Charged      []uuid.UUID `json:"charged"`
	ManualReview []uuid.UUID `json:"manual_review"`
	Skipped      []uuid.UUID `json:"skipped"`
	Failed       []uuid.UUID `json:"failed"`
}

const defaultSweepPageSize = 100

// AutoProcessEmployerBills charges every employer bill whose processing
// window has opened, except bills of manual-only organizations which are
// left for manual review. Ready bills are read in pages of batchSize ordered
// by (processing_scheduled_at_or_after, id); the cursor moves past bills left
// in place, so manual-only bills never hide the ones behind them.
func (b *business) AutoProcessEmployerBills(ctx context.Context, now time.Time, batchSize int32) (*AutoProcessResult, error) {
	if batchSize <= 0 {
		batchSize = defaultSweepPageSize
	}

	params := bills.ListEmployerBillsReadyForProcessingParams{
		Now:              store.Timestamptz(&now),
		AfterScheduledAt: pgtype.Timestamptz{InfinityModifier: pgtype.NegativeInfinity, Valid: true},
		BatchSize:        batchSize,
	}

	result := &AutoProcessResult{}
	for {
		dbBills, err := b.billRepo.ListEmployerBillsReadyForProcessing(ctx, params)
		if err != nil {
			return nil, &errs.Error{Code: errs.Internal, Message: "failed to list employer bills ready for processing"}
		}

		for _, dbBill := range dbBills {
			b.autoProcessBill(ctx, store.ConvertDBBillToModel(dbBill), now, result)
		}

		if len(dbBills) < int(batchSize) {
			return result, nil
		}
		last := dbBills[len(dbBills)-1]
		params.AfterScheduledAt = last.ProcessingScheduledAtOrAfter
		params.AfterID = last.ID
	}
}

func (b *business) autoProcessBill(ctx context.Context, bill *model.Bill, now time.Time, result *AutoProcessResult) {
	autoProcessable, err := b.evaluator.CanEmployerBillBeAutoProcessed(bill, now)
	if err != nil {
		rlog.Error("auto-processing eligibility check failed", "bill_uuid", bill.UUID, "error", err)
		result.Failed = append(result.Failed, bill.UUID)
		return
	}
	if !autoProcessable {
		if ready, _ := b.evaluator.CanEmployerBillBeProcessed(bill, now); ready {
			rlog.Info("employer bill requires manual processing", "bill_uuid", bill.UUID, "organization_id", bill.PayorID)
			result.ManualReview = append(result.ManualReview, bill.UUID)
		}
		return
	}

	if _, err := b.InitiateCharge(ctx, bill.UUID, model.ActorSystem); err != nil {
		// Another caller moved the bill first
		if domain.IsInvalidTransition(err) {
			rlog.Info("skipping employer bill already picked up", "bill_uuid", bill.UUID)
			result.Skipped = append(result.Skipped, bill.UUID)
			return
		}
		rlog.Error("failed to auto-process employer bill", "bill_uuid", bill.UUID, "error", err)
		result.Failed = append(result.Failed, bill.UUID)
		return
	}
	result.Charged = append(result.Charged, bill.UUID)
}
