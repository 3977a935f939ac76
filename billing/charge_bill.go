package billing

import (
	"context"

	"encore.dev/rlog"
)

// BillActionRequest carries who is acting on the bill. System is assumed
// when no actor is given.
type BillActionRequest struct {
	IdempotencyKey string `header:"X-Idempotency-Key" json:"-"`

	Actor string `json:"actor,omitempty" validate:"omitempty,oneof=system admin"`
}

func (r *BillActionRequest) Validate() error {
	return validateRequest(r)
}

// ChargeBill moves a NEW or FAILED bill to PROCESSING and hands it to the
// payment gateway. The response does not wait for settlement.
//
//encore:api public path=/v1/bills/:billUUID/charge method=POST tag:idempotency
func (s *Service) ChargeBill(ctx context.Context, billUUID string, req *BillActionRequest) (*BillResponse, error) {
	id, err := parseBillUUID(billUUID)
	if err != nil {
		return nil, err
	}

	result, err := s.business.InitiateCharge(ctx, id, actorOf(req.Actor))
	if err != nil {
		rlog.Error("failed to charge bill", "error", err, "bill_uuid", billUUID)
		return nil, err
	}

	publishStatusChange(result, "charge_bill")

	return &BillResponse{
		Bill: *result,
	}, nil
}
