package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore.dev/beta/errs"

	"encore.app/billing/model"
)

func TestParsePaymentGatewayEventMessage(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		expectedViolations []string
		expectedEventType  model.GatewayEventType
	}{
		{
			name:              "charge_failed_with_error_payload",
			body:              `{"event_type":"charge.failed","message_payload":{"bill_uuid":"x","transaction_id":"t"},"error_payload":{"decline_code":"insufficient_funds"}}`,
			expectedEventType: model.GatewayEventChargeFailed,
		},
		{
			name:              "error_payload_is_optional",
			body:              `{"event_type":"charge.succeeded","message_payload":{"transaction_id":"t"}}`,
			expectedEventType: model.GatewayEventChargeSucceeded,
		},
		{
			name:               "not_an_object",
			body:               `["charge.succeeded"]`,
			expectedViolations: []string{"message is not a JSON object"},
		},
		{
			name:               "invalid_json",
			body:               `{"event_type":`,
			expectedViolations: []string{"message is not a JSON object"},
		},
		{
			name: "every_violation_is_reported",
			body: `{"event_type":42,"message_payload":"oops","extra":true}`,
			expectedViolations: []string{
				"unexpected key extra",
				"event_type is not a string",
				"message_payload is not a mapping",
			},
		},
		{
			name: "missing_keys",
			body: `{}`,
			expectedViolations: []string{
				"event_type key is missing",
				"message_payload key is missing",
			},
		},
		{
			name:               "unsupported_event_type",
			body:               `{"event_type":"charge.disputed","message_payload":{"transaction_id":"t"}}`,
			expectedViolations: []string{`event_type "charge.disputed" is not supported`},
		},
		{
			name:               "empty_message_payload",
			body:               `{"event_type":"refund.succeeded","message_payload":{}}`,
			expectedViolations: []string{"message_payload is empty"},
		},
		{
			name:               "null_error_payload",
			body:               `{"event_type":"charge.processing","message_payload":{"transaction_id":"t"},"error_payload":null}`,
			expectedViolations: []string{"error_payload is not a mapping"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := ParsePaymentGatewayEventMessage([]byte(tc.body))

			if len(tc.expectedViolations) > 0 {
				require.Error(t, err)
				assert.Equal(t, errs.InvalidArgument, errs.Code(err))
				violations, ok := ValidationViolations(err)
				require.True(t, ok)
				assert.Equal(t, tc.expectedViolations, violations)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedEventType, msg.EventType())
		})
	}
}

func TestPaymentGatewayEventMessage_Accessors(t *testing.T) {
	msg, err := ParsePaymentGatewayEventMessage([]byte(
		`{"event_type":"charge.failed","message_payload":{"transaction_id":"txn-1","version":1},"error_payload":{"decline_code":"expired_card"}}`))
	require.NoError(t, err)

	txn, ok := msg.MessagePayloadValue("transaction_id")
	assert.True(t, ok)
	assert.Equal(t, "txn-1", txn)

	version, ok := msg.MessagePayloadValue("version")
	assert.True(t, ok)
	assert.Equal(t, json.Number("1"), version)

	code, ok := msg.ErrorPayloadValue("decline_code")
	assert.True(t, ok)
	assert.Equal(t, "expired_card", code)

	_, ok = msg.ErrorPayloadValue("missing")
	assert.False(t, ok)

	encoded, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"event_type":"charge.failed","message_payload":{"transaction_id":"txn-1","version":1},"error_payload":{"decline_code":"expired_card"}}`,
		string(encoded))
}

func TestParsePaymentGatewayEventMessage_DefaultsErrorPayload(t *testing.T) {
	msg, err := ParsePaymentGatewayEventMessage([]byte(`{"event_type":"charge.succeeded","message_payload":{"transaction_id":"t"}}`))
	require.NoError(t, err)

	body := msg.RecordBody()
	assert.Equal(t, map[string]any{}, body["error_payload"])
	assert.Equal(t, "charge.succeeded", body["event_type"])
}
