package model

import (
	"encoding/json"
	"time"
)

type ProcessingRecordType string

const (
	ProcessingRecordTypePaymentGatewayEvent     ProcessingRecordType = "payment_gateway_event"
	ProcessingRecordTypePaymentGatewayRequest   ProcessingRecordType = "payment_gateway_request"
	ProcessingRecordTypePaymentGatewayResponse  ProcessingRecordType = "payment_gateway_response"
	ProcessingRecordTypeBillingServiceWorkflow  ProcessingRecordType = "billing_service_workflow"
	ProcessingRecordTypeAdminBillingWorkflow    ProcessingRecordType = "admin_billing_workflow"
	ProcessingRecordTypeManualBillingCorrection ProcessingRecordType = "manual_billing_correction"
)

// BillProcessingRecord is one immutable entry of a bill's audit trail.
// BillStatus is the status the bill held after the record was applied.
type BillProcessingRecord struct {
	ID                   int64                `json:"id"`
	BillID               int64                `json:"bill_id"`
	ProcessingRecordType ProcessingRecordType `json:"processing_record_type"`
	Body                 json.RawMessage      `json:"body"`
	BillStatus           BillStatus           `json:"bill_status"`
	TransactionID        *string              `json:"transaction_id,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
}
