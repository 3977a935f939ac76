package billing

import (
	"context"

	"github.com/google/uuid"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/billing/model"
)

const cancelledRefundAlert = "Cancelled. You will not be charged for this bill."

// AmountBreakdown splits what the payor owes into its parts, in cents.
type AmountBreakdown struct {
	Amount int64 `json:"amount"`
	Fee    int64 `json:"fee"`
	Total  int64 `json:"total"`
}

type BillDetailResponse struct {
	Bill       model.Bill      `json:"bill"`
	Breakdown  AmountBreakdown `json:"breakdown"`
	AlertLabel *string         `json:"alert_label,omitempty"`
}

//encore:api public path=/v1/bills/:billUUID method=GET
func (s *Service) GetBill(ctx context.Context, billUUID string) (*BillDetailResponse, error) {
	id, err := parseBillUUID(billUUID)
	if err != nil {
		return nil, err
	}

	result, err := s.business.GetBill(ctx, id)
	if err != nil {
		rlog.Error("failed to get bill", "error", err, "bill_uuid", billUUID)
		return nil, err
	}

	return &BillDetailResponse{
		Bill:       *result,
		Breakdown:  breakdownOf(result),
		AlertLabel: s.alertLabel(result),
	}, nil
}

type ProcessingRecordsResponse struct {
	Records []model.BillProcessingRecord `json:"records"`
}

//encore:api public path=/v1/bills/:billUUID/processing-records method=GET
func (s *Service) ListProcessingRecords(ctx context.Context, billUUID string) (*ProcessingRecordsResponse, error) {
	id, err := parseBillUUID(billUUID)
	if err != nil {
		return nil, err
	}

	records, err := s.business.ListProcessingRecords(ctx, id)
	if err != nil {
		rlog.Error("failed to list processing records", "error", err, "bill_uuid", billUUID)
		return nil, err
	}

	response := &ProcessingRecordsResponse{
		Records: make([]model.BillProcessingRecord, len(records)),
	}
	for i, record := range records {
		response.Records[i] = *record
	}
	return response, nil
}

func breakdownOf(bill *model.Bill) AmountBreakdown {
	var fee int64
	if bill.LastCalculatedFee != nil {
		fee = *bill.LastCalculatedFee
	}
	return AmountBreakdown{
		Amount: bill.Amount,
		Fee:    fee,
		Total:  bill.Amount + fee,
	}
}

// alertLabel is only shown for cancelled bills while refund policy alerts are on.
func (s *Service) alertLabel(bill *model.Bill) *string {
	if !s.alertsEnabled || bill.Status != model.BillStatusCancelled {
		return nil
	}
	label := cancelledRefundAlert
	return &label
}

func parseBillUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &errs.Error{Code: errs.InvalidArgument, Message: "invalid bill UUID"}
	}
	return id, nil
}
