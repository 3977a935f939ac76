package billing

import (
	"context"

	"encore.dev/rlog"
)

//encore:api public path=/v1/bills/:billUUID/cancel method=POST
func (s *Service) CancelBill(ctx context.Context, billUUID string, req *BillActionRequest) (*BillResponse, error) {
	id, err := parseBillUUID(billUUID)
	if err != nil {
		return nil, err
	}

	result, err := s.business.CancelBill(ctx, id, actorOf(req.Actor))
	if err != nil {
		rlog.Error("failed to cancel bill", "error", err, "bill_uuid", billUUID)
		return nil, err
	}

	publishStatusChange(result, "cancel_bill")

	return &BillResponse{
		Bill: *result,
	}, nil
}
