package billing

import (
	"context"

	"encore.dev/rlog"

	"encore.app/billing/business/bill"
	"encore.app/billing/model"
)

type ListBillsRequest struct {
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
	Status    string `query:"status" validate:"omitempty,oneof=NEW PROCESSING PAID REFUNDED FAILED CANCELLED"`
	PayorType string `query:"payor_type" validate:"omitempty,oneof=MEMBER EMPLOYER CLINIC"`
}

type ListBillsResponse struct {
	Bills      []model.Bill `json:"bills"`
	TotalCount int64        `json:"total_count"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
}

//encore:api public path=/v1/bills method=GET
func (s *Service) ListBills(ctx context.Context, req *ListBillsRequest) (*ListBillsResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	filter := bill.ListBillsFilter{Limit: int32(req.Limit), Offset: int32(req.Offset)}
	if req.Status != "" {
		status := model.BillStatus(req.Status)
		filter.Status = &status
	}
	if req.PayorType != "" {
		payorType := model.PayorType(req.PayorType)
		filter.PayorType = &payorType
	}

	bills, totalCount, err := s.business.ListBills(ctx, filter)
	if err != nil {
		rlog.Error("failed to list bills", "error", err)
		return nil, err
	}

	response := &ListBillsResponse{
		Bills:      make([]model.Bill, len(bills)),
		TotalCount: totalCount,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	for i, b := range bills {
		response.Bills[i] = *b
	}

	return response, nil
}
