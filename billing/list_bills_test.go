package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"encore.app/billing/business/bill"
	"encore.app/billing/domain"
	"encore.app/billing/model"
)

func TestListBills(t *testing.T) {
	testCases := []struct {
		name       string
		request    *ListBillsRequest
		wantLimit  int32
		wantOffset int32
	}{
		{name: "defaults", request: &ListBillsRequest{}, wantLimit: 10, wantOffset: 0},
		{name: "explicit_page", request: &ListBillsRequest{Limit: 25, Offset: 50}, wantLimit: 25, wantOffset: 50},
		{name: "limit_capped", request: &ListBillsRequest{Limit: 1000}, wantLimit: 100, wantOffset: 0},
		{name: "negative_offset", request: &ListBillsRequest{Limit: 5, Offset: -3}, wantLimit: 5, wantOffset: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t)
			bills := []*model.Bill{sampleBill(model.BillStatusNew), sampleBill(model.BillStatusPaid)}

			svc.business.EXPECT().
				ListBills(gomock.Any(), bill.ListBillsFilter{Limit: tc.wantLimit, Offset: tc.wantOffset}).
				Return(bills, int64(12), nil)

			resp, err := svc.ListBills(context.Background(), tc.request)

			require.NoError(t, err)
			assert.Len(t, resp.Bills, 2)
			assert.Equal(t, int64(12), resp.TotalCount)
			assert.Equal(t, int(tc.wantLimit), resp.Limit)
			assert.Equal(t, int(tc.wantOffset), resp.Offset)
		})
	}
}

func TestListBills_Filters(t *testing.T) {
	svc := newTestService(t)
	status := model.BillStatusFailed
	payorType := model.PayorTypeEmployer

	svc.business.EXPECT().
		ListBills(gomock.Any(), bill.ListBillsFilter{Status: &status, PayorType: &payorType, Limit: 10}).
		Return([]*model.Bill{sampleBill(model.BillStatusFailed)}, int64(1), nil)

	resp, err := svc.ListBills(context.Background(), &ListBillsRequest{Status: "FAILED", PayorType: "EMPLOYER"})

	require.NoError(t, err)
	require.Len(t, resp.Bills, 1)
	assert.Equal(t, model.BillStatusFailed, resp.Bills[0].Status)
	assert.Equal(t, int64(1), resp.TotalCount)
}

func TestListBills_InvalidFilters(t *testing.T) {
	testCases := []struct {
		name              string
		request           *ListBillsRequest
		expectedViolation string
	}{
		{
			name:              "unknown_status",
			request:           &ListBillsRequest{Status: "SETTLED"},
			expectedViolation: "status must be one of [NEW PROCESSING PAID REFUNDED FAILED CANCELLED]",
		},
		{
			name:              "unknown_payor_type",
			request:           &ListBillsRequest{PayorType: "INSURER"},
			expectedViolation: "payor_type must be one of [MEMBER EMPLOYER CLINIC]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t)

			resp, err := svc.ListBills(context.Background(), tc.request)

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, errs.InvalidArgument, errs.Code(err))
			violations, ok := domain.ValidationViolations(err)
			require.True(t, ok)
			assert.Equal(t, []string{tc.expectedViolation}, violations)
		})
	}
}

func TestListBills_Error(t *testing.T) {
	svc := newTestService(t)
	svc.business.EXPECT().
		ListBills(gomock.Any(), bill.ListBillsFilter{Limit: 10}).
		Return(nil, int64(0), errors.New("database error"))

	resp, err := svc.ListBills(context.Background(), &ListBillsRequest{})

	assert.Nil(t, resp)
	assert.EqualError(t, err, "database error")
}
