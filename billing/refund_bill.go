package billing

import (
	"context"

	"encore.dev/rlog"
)

// RefundBill refunds a PROCESSING bill in place. A PAID bill is refunded
// through a new refund bill, which is what the response carries.
//
//encore:api public path=/v1/bills/:billUUID/refund method=POST
func (s *Service) RefundBill(ctx context.Context, billUUID string, req *BillActionRequest) (*BillResponse, error) {
	id, err := parseBillUUID(billUUID)
	if err != nil {
		return nil, err
	}

	result, err := s.business.RefundBill(ctx, id, actorOf(req.Actor))
	if err != nil {
		rlog.Error("failed to refund bill", "error", err, "bill_uuid", billUUID)
		return nil, err
	}

	publishStatusChange(result, "refund_bill")

	return &BillResponse{
		Bill: *result,
	}, nil
}
