package billing

import (
	"encoding/json"
	"io"
	"net/http"

	"encore.dev/beta/errs"
	"encore.dev/metrics"
	"encore.dev/rlog"

	"encore.app/billing/business/reconcile"
	"encore.app/billing/domain"
	"encore.app/billing/gateway"
)

const maxEventSize = 1 << 20

type GatewayEventLabels struct {
	Outcome string
}

var GatewayEventsHandled = metrics.NewCounterGroup[GatewayEventLabels, uint64]("gateway_events_handled", metrics.CounterConfig{})

type GatewayEventResponse struct {
	Outcome    reconcile.Outcome `json:"outcome"`
	BillUUID   string            `json:"bill_uuid,omitempty"`
	BillStatus string            `json:"bill_status,omitempty"`
}

// PaymentGatewayEvents receives signed event envelopes from the payment
// gateway. Applied and duplicate events are acknowledged with 200, events the
// bill lifecycle rejects with 409 so they show up in gateway dashboards.
//
//encore:api public raw method=POST path=/v1/payment-gateway/events
func (s *Service) PaymentGatewayEvents(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxEventSize))
	if err != nil {
		countEvent("unreadable")
		errs.HTTPError(w, &errs.Error{Code: errs.InvalidArgument, Message: "failed to read request body"})
		return
	}

	if !gateway.VerifySignature(body, req.Header.Get(gateway.SignatureHeader), s.webhookSecret) {
		rlog.Warn("gateway event with invalid signature", "remote_addr", req.RemoteAddr)
		countEvent("unauthenticated")
		errs.HTTPError(w, &errs.Error{Code: errs.Unauthenticated, Message: "invalid gateway signature"})
		return
	}

	msg, err := domain.ParsePaymentGatewayEventMessage(body)
	if err != nil {
		rlog.Warn("malformed gateway event", "error", err)
		countEvent("invalid")
		errs.HTTPError(w, err)
		return
	}

	result, err := s.reconciler.HandleEvent(req.Context(), msg)
	switch {
	case err == nil:
	case domain.IsInvalidTransition(err):
		countEvent(string(reconcile.OutcomeRejected))
		errs.HTTPErrorWithCode(w, err, http.StatusConflict)
		return
	case domain.IsValidationError(err):
		countEvent("invalid")
		errs.HTTPError(w, err)
		return
	default:
		rlog.Error("failed to handle gateway event", "event_type", msg.EventType(), "error", err)
		countEvent("error")
		errs.HTTPError(w, err)
		return
	}

	countEvent(string(result.Outcome))
	if result.Outcome == reconcile.OutcomeApplied {
		publishStatusChange(result.Bill, "payment_gateway_event")
	}

	writeJSON(w, http.StatusOK, eventResponse(result))
}

func eventResponse(result *reconcile.Result) GatewayEventResponse {
	resp := GatewayEventResponse{Outcome: result.Outcome}
	if result.Bill != nil {
		resp.BillUUID = result.Bill.UUID.String()
		resp.BillStatus = string(result.Bill.Status)
	}
	return resp
}

func countEvent(outcome string) {
	GatewayEventsHandled.With(GatewayEventLabels{Outcome: outcome}).Increment()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rlog.Error("failed to write response", "error", err)
	}
}
