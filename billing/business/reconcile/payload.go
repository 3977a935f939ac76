package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"encore.app/billing/domain"
	"encore.app/billing/model"
)

// Version 1 of the gateway message_payload layout. Every event type shares
// the same keys, so the bill is always resolved from bill_uuid and never
// guessed from other identifiers.
const (
	payloadVersion1 = 1

	keyVersion       = "version"
	keyBillUUID      = "bill_uuid"
	keyTransactionID = "transaction_id"
	keyDeclineCode   = "decline_code"
)

// gatewayEvent is the resolved, typed view of a gateway message.
type gatewayEvent struct {
	billUUID      uuid.UUID
	transactionID string
	target        model.BillStatus
	errorType     *model.BillErrorType
}

func resolveEvent(msg domain.PaymentGatewayEventMessage) (gatewayEvent, error) {
	var (
		event      gatewayEvent
		violations []string
	)

	if raw, ok := msg.MessagePayloadValue(keyVersion); ok {
		if version, isNumber := raw.(json.Number); !isNumber || version.String() != fmt.Sprint(payloadVersion1) {
			violations = append(violations, fmt.Sprintf("message_payload version %v is not supported", raw))
		}
	}

	switch raw, ok := msg.MessagePayloadValue(keyBillUUID); {
	case !ok:
		violations = append(violations, "message_payload bill_uuid key is missing")
	default:
		value, isString := raw.(string)
		parsed, err := uuid.Parse(value)
		if !isString || err != nil {
			violations = append(violations, "message_payload bill_uuid is not a valid UUID")
		} else {
			event.billUUID = parsed
		}
	}

	switch raw, ok := msg.MessagePayloadValue(keyTransactionID); {
	case !ok:
		violations = append(violations, "message_payload transaction_id key is missing")
	default:
		value, isString := raw.(string)
		if !isString || strings.TrimSpace(value) == "" {
			violations = append(violations, "message_payload transaction_id is not a non-empty string")
		} else {
			event.transactionID = value
		}
	}

	if len(violations) > 0 {
		return gatewayEvent{}, domain.NewValidationError(violations)
	}

	event.target, _ = msg.EventType().TargetStatus()
	if event.target == model.BillStatusFailed {
		// Unknown or missing reasons degrade to UNKNOWN instead of failing reconciliation
		code, _ := msg.ErrorPayloadValue(keyDeclineCode)
		declineCode, _ := code.(string)
		errorType := model.ErrorTypeForDeclineCode(declineCode)
		event.errorType = &errorType
	}

	return event, nil
}
