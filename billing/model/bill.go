package model

import (
	"time"

	"github.com/google/uuid"
)

type Bill struct {
	ID                           int64          `json:"id"`
	UUID                         uuid.UUID      `json:"uuid"`
	Amount                       int64          `json:"amount"`
	LastCalculatedFee            *int64         `json:"last_calculated_fee,omitempty"`
	PayorType                    PayorType      `json:"payor_type"`
	PayorID                      int64          `json:"payor_id"`
	ProcedureID                  int64          `json:"procedure_id"`
	CostBreakdownID              int64          `json:"cost_breakdown_id"`
	Status                       BillStatus     `json:"status"`
	PaymentMethod                PaymentMethod  `json:"payment_method"`
	PaymentMethodID              *string        `json:"payment_method_id,omitempty"`
	PaymentMethodType            *string        `json:"payment_method_type,omitempty"`
	PaymentMethodLabel           *string        `json:"payment_method_label,omitempty"`
	CardFunding                  *CardFunding   `json:"card_funding,omitempty"`
	ProcessingAt                 *time.Time     `json:"processing_at,omitempty"`
	PaidAt                       *time.Time     `json:"paid_at,omitempty"`
	RefundedAt                   *time.Time     `json:"refunded_at,omitempty"`
	FailedAt                     *time.Time     `json:"failed_at,omitempty"`
	CancelledAt                  *time.Time     `json:"cancelled_at,omitempty"`
	RefundInitiatedAt            *time.Time     `json:"refund_initiated_at,omitempty"`
	ProcessingScheduledAtOrAfter *time.Time     `json:"processing_scheduled_at_or_after,omitempty"`
	ErrorType                    *BillErrorType `json:"error_type,omitempty"`
	RefundOfBillID               *int64         `json:"refund_of_bill_id,omitempty"`
	IdempotencyKey               string         `json:"-"`
	CreatedAt                    time.Time      `json:"created_at"`
	UpdatedAt                    time.Time      `json:"updated_at"`

	// IsEphemeral marks a speculative copy (cost estimates) that is never persisted.
	IsEphemeral bool `json:"is_ephemeral,omitempty"`
}

// BillStatus is the lifecycle state of a bill. The zero value means the bill
// does not exist yet.
type BillStatus string

const (
	BillStatusNone       BillStatus = ""
	BillStatusNew        BillStatus = "NEW"
	BillStatusProcessing BillStatus = "PROCESSING"
	BillStatusPaid       BillStatus = "PAID"
	BillStatusRefunded   BillStatus = "REFUNDED"
	BillStatusFailed     BillStatus = "FAILED"
	BillStatusCancelled  BillStatus = "CANCELLED"
)

// BillStatuses lists every persisted status.
var BillStatuses = []BillStatus{
	BillStatusNew,
	BillStatusProcessing,
	BillStatusPaid,
	BillStatusRefunded,
	BillStatusFailed,
	BillStatusCancelled,
}

// IsTerminal reports whether no transition may leave the status.
func (s BillStatus) IsTerminal() bool {
	switch s {
	case BillStatusPaid, BillStatusRefunded, BillStatusCancelled:
		return true
	default:
		return false
	}
}

type PayorType string

const (
	PayorTypeMember   PayorType = "MEMBER"
	PayorTypeEmployer PayorType = "EMPLOYER"
	PayorTypeClinic   PayorType = "CLINIC"
)

func (p PayorType) Valid() bool {
	switch p {
	case PayorTypeMember, PayorTypeEmployer, PayorTypeClinic:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodPaymentGateway PaymentMethod = "PAYMENT_GATEWAY"
	PaymentMethodWriteOff       PaymentMethod = "WRITE_OFF"
	PaymentMethodOffline        PaymentMethod = "OFFLINE"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodPaymentGateway, PaymentMethodWriteOff, PaymentMethodOffline:
		return true
	}
	return false
}

type CardFunding string

const (
	CardFundingCredit  CardFunding = "CREDIT"
	CardFundingDebit   CardFunding = "DEBIT"
	CardFundingPrepaid CardFunding = "PREPAID"
	CardFundingUnknown CardFunding = "UNKNOWN"
)

// BillErrorType is only set on FAILED bills.
type BillErrorType string

const (
	BillErrorTypeContactCardIssuer           BillErrorType = "CONTACT_CARD_ISSUER"
	BillErrorTypeInsufficientFunds           BillErrorType = "INSUFFICIENT_FUNDS"
	BillErrorTypePaymentMethodHasExpired     BillErrorType = "PAYMENT_METHOD_HAS_EXPIRED"
	BillErrorTypeRequiresAuthenticatePayment BillErrorType = "REQUIRES_AUTHENTICATE_PAYMENT"
	BillErrorTypeOtherMaven                  BillErrorType = "OTHER_MAVEN"
	BillErrorTypeUnknown                     BillErrorType = "UNKNOWN"
)

// Actor identifies who initiated an orchestrator operation.
type Actor string

const (
	ActorSystem Actor = "system"
	ActorAdmin  Actor = "admin"
)

// RecordType maps the actor to the processing record type its actions produce.
func (a Actor) RecordType() ProcessingRecordType {
	if a == ActorAdmin {
		return ProcessingRecordTypeAdminBillingWorkflow
	}
	return ProcessingRecordTypeBillingServiceWorkflow
}
