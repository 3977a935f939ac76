package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"encore.dev/beta/errs"

	"encore.app/billing/domain"
	"encore.app/billing/model"
	"encore.app/billing/store"
	"encore.app/billing/store/bills"
)

// CreateBill inserts a NEW bill and its first processing record in one
// transaction. Invalid payor/amount combinations are rejected before any row
// is written.
func (b *business) CreateBill(ctx context.Context, bill *model.Bill, actor model.Actor) (*model.Bill, error) {
	if violations := validateNewBill(bill); len(violations) > 0 {
		return nil, domain.NewValidationError(violations)
	}

	var created bills.Bill
	err := b.stateMachine.ExecuteInTx(ctx, func(uow domain.UnitOfWork) error {
		var err error
		created, err = insertBill(ctx, uow, bill, actor, workflowRecord{Action: "create_bill", Actor: actor})
		return err
	})
	if err != nil {
		return nil, err
	}

	return store.ConvertDBBillToModel(created), nil
}

// insertBill writes a NEW bill row and the record documenting its creation.
func insertBill(ctx context.Context, uow domain.UnitOfWork, bill *model.Bill, actor model.Actor, body workflowRecord) (bills.Bill, error) {
	if err := domain.ValidateTransition(model.BillStatusNone, model.BillStatusNew); err != nil {
		return bills.Bill{}, err
	}

	billUUID := bill.UUID
	if billUUID == uuid.Nil {
		billUUID = uuid.New()
	}
	idempotencyKey := bill.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = billUUID.String()
	}

	var cardFunding *string
	if bill.CardFunding != nil {
		funding := string(*bill.CardFunding)
		cardFunding = &funding
	}

	dbBill, err := uow.Bills().CreateBill(ctx, bills.CreateBillParams{
		Uuid:                         store.UUID(billUUID),
		Amount:                       bill.Amount,
		LastCalculatedFee:            store.Int8(bill.LastCalculatedFee),
		PayorType:                    string(bill.PayorType),
		PayorID:                      bill.PayorID,
		ProcedureID:                  bill.ProcedureID,
		CostBreakdownID:              bill.CostBreakdownID,
		Status:                       string(model.BillStatusNew),
		PaymentMethod:                string(bill.PaymentMethod),
		PaymentMethodID:              store.Text(bill.PaymentMethodID),
		PaymentMethodType:            store.Text(bill.PaymentMethodType),
		PaymentMethodLabel:           store.Text(bill.PaymentMethodLabel),
		CardFunding:                  store.Text(cardFunding),
		ProcessingScheduledAtOrAfter: store.Timestamptz(bill.ProcessingScheduledAtOrAfter),
		RefundOfBillID:               store.Int8(bill.RefundOfBillID),
		IdempotencyKey:               idempotencyKey,
	})
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return bills.Bill{}, &errs.Error{Code: errs.AlreadyExists, Message: "bill is duplicated"}
		}
		return bills.Bill{}, &errs.Error{Code: errs.Internal, Message: "failed to create bill"}
	}

	if _, err := domain.AppendRecord(ctx, uow, dbBill, actor.RecordType(), body, nil); err != nil {
		return bills.Bill{}, err
	}

	return dbBill, nil
}

// validateNewBill collects every reason the bill cannot be created.
func validateNewBill(bill *model.Bill) []string {
	if bill == nil {
		return []string{"bill is required"}
	}

	var violations []string
	if bill.IsEphemeral {
		violations = append(violations, "ephemeral bills cannot be persisted")
	}
	if bill.Status != model.BillStatusNone && bill.Status != model.BillStatusNew {
		violations = append(violations, fmt.Sprintf("new bills must start in NEW status, got %s", bill.Status))
	}
	if !bill.PayorType.Valid() {
		violations = append(violations, fmt.Sprintf("payor_type %q is not supported", bill.PayorType))
	}
	if bill.PayorID <= 0 {
		violations = append(violations, "payor_id must be positive")
	}
	if bill.Amount <= 0 {
		violations = append(violations, "amount must be positive")
	}
	if bill.LastCalculatedFee != nil && *bill.LastCalculatedFee < 0 {
		violations = append(violations, "last_calculated_fee must not be negative")
	}
	if !bill.PaymentMethod.Valid() {
		violations = append(violations, fmt.Sprintf("payment_method %q is not supported", bill.PaymentMethod))
	}
	if bill.PayorType == model.PayorTypeClinic && bill.PaymentMethod == model.PaymentMethodPaymentGateway {
		violations = append(violations, "CLINIC bills cannot be charged through the payment gateway")
	}
	if bill.ErrorType != nil {
		violations = append(violations, "error_type can only be set on FAILED bills")
	}
	if bill.RefundOfBillID != nil {
		violations = append(violations, "refund bills are created through the refund operation")
	}
	return violations
}
