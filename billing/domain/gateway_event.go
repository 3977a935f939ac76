package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"encore.app/billing/model"
)

const (
	keyEventType      = "event_type"
	keyMessagePayload = "message_payload"
	keyErrorPayload   = "error_payload"
)

// PaymentGatewayEventMessage is a validated inbound gateway notification.
// It can only be built by ParsePaymentGatewayEventMessage and is read-only.
type PaymentGatewayEventMessage struct {
	eventType      model.GatewayEventType
	messagePayload map[string]any
	errorPayload   map[string]any
}

func (m PaymentGatewayEventMessage) EventType() model.GatewayEventType { return m.eventType }

// MessagePayloadValue returns a top-level value of message_payload.
func (m PaymentGatewayEventMessage) MessagePayloadValue(key string) (any, bool) {
	v, ok := m.messagePayload[key]
	return v, ok
}

// ErrorPayloadValue returns a top-level value of error_payload.
func (m PaymentGatewayEventMessage) ErrorPayloadValue(key string) (any, bool) {
	v, ok := m.errorPayload[key]
	return v, ok
}

// RecordBody returns a fresh copy of the envelope as stored in processing
// record bodies.
func (m PaymentGatewayEventMessage) RecordBody() map[string]any {
	return map[string]any{
		keyEventType:      string(m.eventType),
		keyMessagePayload: m.messagePayload,
		keyErrorPayload:   m.errorPayload,
	}
}

func (m PaymentGatewayEventMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.RecordBody())
}

// ParsePaymentGatewayEventMessage validates a raw webhook body. Every
// violation found is reported in a single validation error.
func ParsePaymentGatewayEventMessage(data []byte) (PaymentGatewayEventMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil || envelope == nil {
		return PaymentGatewayEventMessage{}, NewValidationError([]string{"message is not a JSON object"})
	}

	var (
		msg        PaymentGatewayEventMessage
		violations []string
	)

	for _, key := range sortedKeys(envelope) {
		if key != keyEventType && key != keyMessagePayload && key != keyErrorPayload {
			violations = append(violations, fmt.Sprintf("unexpected key %s", key))
		}
	}

	if raw, ok := envelope[keyEventType]; !ok {
		violations = append(violations, "event_type key is missing")
	} else {
		var eventType string
		if err := json.Unmarshal(raw, &eventType); err != nil {
			violations = append(violations, "event_type is not a string")
		} else if _, supported := model.GatewayEventType(eventType).TargetStatus(); !supported {
			violations = append(violations, fmt.Sprintf("event_type %q is not supported", eventType))
		} else {
			msg.eventType = model.GatewayEventType(eventType)
		}
	}

	if raw, ok := envelope[keyMessagePayload]; !ok {
		violations = append(violations, "message_payload key is missing")
	} else if payload, isMapping := decodeMapping(raw); !isMapping {
		violations = append(violations, "message_payload is not a mapping")
	} else if len(payload) == 0 {
		violations = append(violations, "message_payload is empty")
	} else {
		msg.messagePayload = payload
	}

	msg.errorPayload = map[string]any{}
	if raw, ok := envelope[keyErrorPayload]; ok {
		if payload, isMapping := decodeMapping(raw); !isMapping {
			violations = append(violations, "error_payload is not a mapping")
		} else {
			msg.errorPayload = payload
		}
	}

	if len(violations) > 0 {
		return PaymentGatewayEventMessage{}, NewValidationError(violations)
	}
	return msg, nil
}

// decodeMapping decodes raw as a JSON object. null is not a mapping.
func decodeMapping(raw json.RawMessage) (map[string]any, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var mapping map[string]any
	if err := decoder.Decode(&mapping); err != nil {
		return nil, false
	}
	return mapping, true
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
