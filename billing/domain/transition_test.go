package domain_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"encore.app/billing/domain"
	"encore.app/billing/mocks/domain/state_machine"
	"encore.app/billing/model"
	"encore.app/billing/store"
	"encore.app/billing/store/bills"
	"encore.app/billing/store/storetest"
)

var transitionNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func seedBill(t *testing.T, db *storetest.Store, status model.BillStatus) bills.Bill {
	t.Helper()

	var created bills.Bill
	err := db.ExecuteInTx(context.Background(), func(uow domain.UnitOfWork) error {
		id := uuid.New()
		var err error
		created, err = uow.Bills().CreateBill(context.Background(), bills.CreateBillParams{
			Uuid:           store.UUID(id),
			Amount:         10000,
			PayorType:      string(model.PayorTypeMember),
			PayorID:        7,
			Status:         string(status),
			PaymentMethod:  string(model.PaymentMethodPaymentGateway),
			IdempotencyKey: id.String(),
		})
		return err
	})
	require.NoError(t, err)
	return created
}

func transition(t *testing.T, db *storetest.Store, current bills.Bill, req domain.TransitionRequest) (bills.Bill, error) {
	t.Helper()

	var updated bills.Bill
	err := db.GetBillWithLock(context.Background(), uuid.UUID(current.Uuid.Bytes), func(uow domain.UnitOfWork, locked bills.Bill) error {
		var err error
		updated, err = domain.Transition(context.Background(), uow, locked, req)
		return err
	})
	return updated, err
}

func TestTransition_StampsLifecycleTimestamps(t *testing.T) {
	db := storetest.New()
	bill := seedBill(t, db, model.BillStatusNew)

	processing, err := transition(t, db, bill, domain.TransitionRequest{
		Target:     model.BillStatusProcessing,
		RecordType: model.ProcessingRecordTypeBillingServiceWorkflow,
		Body:       map[string]string{"action": "initiate_charge"},
		At:         transitionNow,
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.BillStatusProcessing), processing.Status)
	assert.Equal(t, transitionNow, processing.ProcessingAt.Time)
	assert.False(t, processing.PaidAt.Valid)

	later := transitionNow.Add(time.Hour)
	failed, err := transition(t, db, processing, domain.TransitionRequest{
		Target:     model.BillStatusFailed,
		RecordType: model.ProcessingRecordTypePaymentGatewayEvent,
		At:         later,
	})
	require.NoError(t, err)
	assert.Equal(t, later, failed.FailedAt.Time)
	assert.Equal(t, transitionNow, failed.ProcessingAt.Time)
	assert.Equal(t, string(model.BillErrorTypeUnknown), failed.ErrorType.String)

	retried, err := transition(t, db, failed, domain.TransitionRequest{
		Target:     model.BillStatusProcessing,
		RecordType: model.ProcessingRecordTypeBillingServiceWorkflow,
		At:         later.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.False(t, retried.ErrorType.Valid)
	assert.Equal(t, later.Add(time.Hour), retried.ProcessingAt.Time)

	records := db.RecordsFor(bill.ID)
	require.Len(t, records, 3)
	assert.Equal(t, string(model.BillStatusProcessing), records[0].BillStatus)
	assert.JSONEq(t, `{"action":"initiate_charge"}`, string(records[0].Body))
	assert.Equal(t, string(model.BillStatusFailed), records[1].BillStatus)
	assert.JSONEq(t, `{}`, string(records[1].Body))
	assert.Equal(t, string(model.BillStatusProcessing), records[2].BillStatus)
}

func TestTransition_FailedKeepsRequestedErrorType(t *testing.T) {
	db := storetest.New()
	bill := seedBill(t, db, model.BillStatusProcessing)
	errorType := model.BillErrorTypeInsufficientFunds
	txn := "txn-1"

	failed, err := transition(t, db, bill, domain.TransitionRequest{
		Target:        model.BillStatusFailed,
		RecordType:    model.ProcessingRecordTypePaymentGatewayEvent,
		ErrorType:     &errorType,
		TransactionID: &txn,
		At:            transitionNow,
	})
	require.NoError(t, err)
	assert.Equal(t, string(errorType), failed.ErrorType.String)

	records := db.RecordsFor(bill.ID)
	require.Len(t, records, 1)
	assert.Equal(t, txn, records[0].TransactionID.String)
}

func TestTransition_SameStatusKeepsTimestamps(t *testing.T) {
	db := storetest.New()
	bill := seedBill(t, db, model.BillStatusNew)

	processing, err := transition(t, db, bill, domain.TransitionRequest{
		Target:     model.BillStatusProcessing,
		RecordType: model.ProcessingRecordTypeBillingServiceWorkflow,
		At:         transitionNow,
	})
	require.NoError(t, err)

	again, err := transition(t, db, processing, domain.TransitionRequest{
		Target:          model.BillStatusProcessing,
		RecordType:      model.ProcessingRecordTypeAdminBillingWorkflow,
		RefundInitiated: true,
		At:              transitionNow.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, transitionNow, again.ProcessingAt.Time)
	assert.Equal(t, transitionNow.Add(time.Minute), again.RefundInitiatedAt.Time)
	assert.Len(t, db.RecordsFor(bill.ID), 2)
}

func TestTransition_RejectedTransitionWritesNothing(t *testing.T) {
	db := storetest.New()
	bill := seedBill(t, db, model.BillStatusCancelled)

	_, err := transition(t, db, bill, domain.TransitionRequest{
		Target:     model.BillStatusProcessing,
		RecordType: model.ProcessingRecordTypeBillingServiceWorkflow,
		At:         transitionNow,
	})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidTransition(err))

	persisted, records := db.Snapshot()
	require.Len(t, persisted, 1)
	assert.Equal(t, string(model.BillStatusCancelled), persisted[0].Status)
	assert.Empty(t, records)
}

func TestAppendRecord_EmptyBodyIsEmptyObject(t *testing.T) {
	db := storetest.New()
	bill := seedBill(t, db, model.BillStatusNew)

	err := db.GetBillWithLock(context.Background(), uuid.UUID(bill.Uuid.Bytes), func(uow domain.UnitOfWork, current bills.Bill) error {
		_, err := domain.AppendRecord(context.Background(), uow, current, model.ProcessingRecordTypeManualBillingCorrection, json.RawMessage(nil), nil)
		return err
	})
	require.NoError(t, err)

	records := db.RecordsFor(bill.ID)
	require.Len(t, records, 1)
	assert.JSONEq(t, `{}`, string(records[0].Body))
	assert.Equal(t, string(model.BillStatusNew), records[0].BillStatus)
	assert.False(t, records[0].TransactionID.Valid)
}

func TestBillStateMachine_BeginFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := state_machine.NewMockTxBeginner(ctrl)
	mockDB.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("connection refused"))

	sm := domain.NewBillStateMachine(mockDB)
	err := sm.GetBillWithLock(context.Background(), uuid.New(), func(domain.UnitOfWork, bills.Bill) error {
		t.Fatal("business logic must not run without a transaction")
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, errs.Internal, errs.Code(err))
	assert.Contains(t, err.Error(), "failed to start transaction")
}
