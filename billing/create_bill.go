package billing

import (
	"context"
	"time"

	"encore.dev/rlog"

	"encore.app/billing/model"
)

type CreateBillRequest struct {
	IdempotencyKey string `header:"X-Idempotency-Key" json:"-"`

	Amount                       int64      `json:"amount" validate:"gt=0"`
	LastCalculatedFee            *int64     `json:"last_calculated_fee,omitempty" validate:"omitempty,gte=0"`
	PayorType                    string     `json:"payor_type" validate:"required,oneof=MEMBER EMPLOYER CLINIC"`
	PayorID                      int64      `json:"payor_id" validate:"gt=0"`
	ProcedureID                  int64      `json:"procedure_id" validate:"gt=0"`
	CostBreakdownID              int64      `json:"cost_breakdown_id" validate:"gt=0"`
	PaymentMethod                string     `json:"payment_method" validate:"required,oneof=PAYMENT_GATEWAY WRITE_OFF OFFLINE"`
	PaymentMethodID              *string    `json:"payment_method_id,omitempty"`
	PaymentMethodType            *string    `json:"payment_method_type,omitempty"`
	PaymentMethodLabel           *string    `json:"payment_method_label,omitempty"`
	CardFunding                  *string    `json:"card_funding,omitempty" validate:"omitempty,oneof=CREDIT DEBIT PREPAID UNKNOWN"`
	ProcessingScheduledAtOrAfter *time.Time `json:"processing_scheduled_at_or_after,omitempty"`
	Actor                        string     `json:"actor,omitempty" validate:"omitempty,oneof=system admin"`
}

type BillResponse struct {
	Bill model.Bill `json:"bill"`
}

//encore:api public path=/v1/bills method=POST tag:idempotency
func (s *Service) CreateBill(ctx context.Context, req *CreateBillRequest) (*BillResponse, error) {
	bill := &model.Bill{
		Amount:                       req.Amount,
		LastCalculatedFee:            req.LastCalculatedFee,
		PayorType:                    model.PayorType(req.PayorType),
		PayorID:                      req.PayorID,
		ProcedureID:                  req.ProcedureID,
		CostBreakdownID:              req.CostBreakdownID,
		PaymentMethod:                model.PaymentMethod(req.PaymentMethod),
		PaymentMethodID:              req.PaymentMethodID,
		PaymentMethodType:            req.PaymentMethodType,
		PaymentMethodLabel:           req.PaymentMethodLabel,
		ProcessingScheduledAtOrAfter: req.ProcessingScheduledAtOrAfter,
		IdempotencyKey:               req.IdempotencyKey,
	}
	if req.CardFunding != nil {
		funding := model.CardFunding(*req.CardFunding)
		bill.CardFunding = &funding
	}

	result, err := s.business.CreateBill(ctx, bill, actorOf(req.Actor))
	if err != nil {
		rlog.Error("failed to create bill", "error", err, "payor_type", req.PayorType, "payor_id", req.PayorID)
		return nil, err
	}

	publishStatusChange(result, "create_bill")

	return &BillResponse{
		Bill: *result,
	}, nil
}

// Validate implements validation for CreateBillRequest using go-playground/validator
func (r *CreateBillRequest) Validate() error {
	return validateRequest(r)
}

func actorOf(raw string) model.Actor {
	if model.Actor(raw) == model.ActorAdmin {
		return model.ActorAdmin
	}
	return model.ActorSystem
}
