package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"encore.app/billing/domain"
	"encore.app/billing/model"
)

func validCreateRequest() *CreateBillRequest {
	return &CreateBillRequest{
		IdempotencyKey:  "create-42",
		Amount:          12500,
		PayorType:       "MEMBER",
		PayorID:         42,
		ProcedureID:     7,
		CostBreakdownID: 9,
		PaymentMethod:   "PAYMENT_GATEWAY",
	}
}

func TestCreateBill(t *testing.T) {
	t.Run("creates_bill_and_publishes", func(t *testing.T) {
		svc := newTestService(t)
		created := sampleBill(model.BillStatusNew)

		svc.business.EXPECT().
			CreateBill(gomock.Any(), gomock.Any(), model.ActorSystem).
			DoAndReturn(func(_ context.Context, bill *model.Bill, _ model.Actor) (*model.Bill, error) {
				assert.Equal(t, int64(12500), bill.Amount)
				assert.Equal(t, model.PayorTypeMember, bill.PayorType)
				assert.Equal(t, model.PaymentMethodPaymentGateway, bill.PaymentMethod)
				assert.Equal(t, "create-42", bill.IdempotencyKey)
				return created, nil
			})

		resp, err := svc.CreateBill(context.Background(), validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, created.UUID, resp.Bill.UUID)
		assert.Equal(t, model.BillStatusNew, resp.Bill.Status)
		assert.Equal(t, []string{"publish bill status"}, svc.async.Ops())
	})

	t.Run("admin_actor_and_card_funding", func(t *testing.T) {
		svc := newTestService(t)
		req := validCreateRequest()
		req.Actor = "admin"
		funding := "DEBIT"
		req.CardFunding = &funding

		svc.business.EXPECT().
			CreateBill(gomock.Any(), gomock.Any(), model.ActorAdmin).
			DoAndReturn(func(_ context.Context, bill *model.Bill, _ model.Actor) (*model.Bill, error) {
				require.NotNil(t, bill.CardFunding)
				assert.Equal(t, model.CardFundingDebit, *bill.CardFunding)
				return sampleBill(model.BillStatusNew), nil
			})

		_, err := svc.CreateBill(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("duplicate_is_returned_unchanged", func(t *testing.T) {
		svc := newTestService(t)
		svc.business.EXPECT().
			CreateBill(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &errs.Error{Code: errs.AlreadyExists, Message: "bill is duplicated"})

		resp, err := svc.CreateBill(context.Background(), validCreateRequest())

		assert.Nil(t, resp)
		assert.Equal(t, errs.AlreadyExists, errs.Code(err))
		assert.Empty(t, svc.async.Ops())
	})
}

func TestCreateBillRequest_Validation(t *testing.T) {
	negativeFee := int64(-1)
	badFunding := "GIFT_CARD"

	testCases := []struct {
		name       string
		mutate     func(r *CreateBillRequest)
		violations []string
	}{
		{
			name:   "valid_request",
			mutate: func(r *CreateBillRequest) {},
		},
		{
			name:       "non_positive_amount",
			mutate:     func(r *CreateBillRequest) { r.Amount = 0 },
			violations: []string{"amount must be greater than 0"},
		},
		{
			name:       "unknown_payor_type",
			mutate:     func(r *CreateBillRequest) { r.PayorType = "INSURER" },
			violations: []string{"payor_type must be one of [MEMBER EMPLOYER CLINIC]"},
		},
		{
			name:       "negative_fee",
			mutate:     func(r *CreateBillRequest) { r.LastCalculatedFee = &negativeFee },
			violations: []string{"last_calculated_fee must be at least 0"},
		},
		{
			name:       "unknown_card_funding",
			mutate:     func(r *CreateBillRequest) { r.CardFunding = &badFunding },
			violations: []string{"card_funding must be one of [CREDIT DEBIT PREPAID UNKNOWN]"},
		},
		{
			name: "all_violations_reported",
			mutate: func(r *CreateBillRequest) {
				r.PayorID = 0
				r.ProcedureID = 0
				r.PaymentMethod = ""
				r.Actor = "robot"
			},
			violations: []string{
				"payor_id must be greater than 0",
				"procedure_id must be greater than 0",
				"payment_method is required",
				"actor must be one of [system admin]",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(req)

			err := req.Validate()

			if len(tc.violations) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errs.InvalidArgument, errs.Code(err))
			violations, ok := domain.ValidationViolations(err)
			require.True(t, ok)
			assert.Equal(t, tc.violations, violations)
		})
	}
}
