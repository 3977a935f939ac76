package bill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore.app/billing/model"
	"encore.app/billing/store/storetest"
)

func TestListBills(t *testing.T) {
	db := storetest.New()
	b := newTestBusiness(db, nil)
	first := mustCreate(t, b, newMemberBill(model.PaymentMethodPaymentGateway))
	second := mustCreate(t, b, newMemberBill(model.PaymentMethodOffline))
	third := mustCreate(t, b, newMemberBill(model.PaymentMethodWriteOff))

	testCases := []struct {
		name          string
		limit         int32
		offset        int32
		expectedUUIDs []string
	}{
		{
			name:          "newest_first",
			limit:         10,
			expectedUUIDs: []string{third.UUID.String(), second.UUID.String(), first.UUID.String()},
		},
		{
			name:          "paginated",
			limit:         1,
			offset:        1,
			expectedUUIDs: []string{second.UUID.String()},
		},
		{
			name:   "past_the_end",
			limit:  10,
			offset: 5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			list, total, err := b.ListBills(context.Background(), ListBillsFilter{Limit: tc.limit, Offset: tc.offset})

			require.NoError(t, err)
			assert.Equal(t, int64(3), total)
			var got []string
			for _, bill := range list {
				got = append(got, bill.UUID.String())
			}
			assert.Equal(t, tc.expectedUUIDs, got)
		})
	}
}

func TestListBills_Filters(t *testing.T) {
	db := storetest.New()
	b := newTestBusiness(db, nil)
	newMember := mustCreate(t, b, newMemberBill(model.PaymentMethodPaymentGateway))
	paidMember := mustCreate(t, b, newMemberBill(model.PaymentMethodPaymentGateway))
	forceStatus(t, db, paidMember, model.BillStatusPaid)
	employer := mustCreate(t, b, newEmployerBill(1, nil))

	status := func(s model.BillStatus) *model.BillStatus { return &s }
	payor := func(p model.PayorType) *model.PayorType { return &p }

	testCases := []struct {
		name          string
		filter        ListBillsFilter
		expectedUUIDs []string
		expectedTotal int64
	}{
		{
			name:          "by_status",
			filter:        ListBillsFilter{Status: status(model.BillStatusNew), Limit: 10},
			expectedUUIDs: []string{employer.UUID.String(), newMember.UUID.String()},
			expectedTotal: 2,
		},
		{
			name:          "by_payor_type",
			filter:        ListBillsFilter{PayorType: payor(model.PayorTypeMember), Limit: 10},
			expectedUUIDs: []string{paidMember.UUID.String(), newMember.UUID.String()},
			expectedTotal: 2,
		},
		{
			name: "both",
			filter: ListBillsFilter{
				Status:    status(model.BillStatusPaid),
				PayorType: payor(model.PayorTypeMember),
				Limit:     10,
			},
			expectedUUIDs: []string{paidMember.UUID.String()},
			expectedTotal: 1,
		},
		{
			name:          "total_ignores_page",
			filter:        ListBillsFilter{PayorType: payor(model.PayorTypeMember), Limit: 1},
			expectedUUIDs: []string{paidMember.UUID.String()},
			expectedTotal: 2,
		},
		{
			name:          "no_match",
			filter:        ListBillsFilter{Status: status(model.BillStatusRefunded), Limit: 10},
			expectedTotal: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			list, total, err := b.ListBills(context.Background(), tc.filter)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedTotal, total)
			var got []string
			for _, bill := range list {
				got = append(got, bill.UUID.String())
			}
			assert.Equal(t, tc.expectedUUIDs, got)
		})
	}
}
