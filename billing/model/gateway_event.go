package model

// GatewayEventType is the event_type of an inbound payment gateway notification.
type GatewayEventType string

const (
	GatewayEventChargeProcessing GatewayEventType = "charge.processing"
	GatewayEventChargeSucceeded  GatewayEventType = "charge.succeeded"
	GatewayEventChargeFailed     GatewayEventType = "charge.failed"
	GatewayEventRefundSucceeded  GatewayEventType = "refund.succeeded"
)

// TargetStatus returns the bill status an event moves a bill to.
// ok is false for unsupported event types.
func (e GatewayEventType) TargetStatus() (status BillStatus, ok bool) {
	switch e {
	case GatewayEventChargeProcessing:
		return BillStatusProcessing, true
	case GatewayEventChargeSucceeded:
		return BillStatusPaid, true
	case GatewayEventChargeFailed:
		return BillStatusFailed, true
	case GatewayEventRefundSucceeded:
		return BillStatusRefunded, true
	default:
		return BillStatusNone, false
	}
}

// Gateway decline codes reported in error_payload.decline_code.
const (
	DeclineCodeCallIssuer             = "call_issuer"
	DeclineCodeDoNotHonor             = "do_not_honor"
	DeclineCodeCardDeclined           = "card_declined"
	DeclineCodeInsufficientFunds      = "insufficient_funds"
	DeclineCodeExpiredCard            = "expired_card"
	DeclineCodeAuthenticationRequired = "authentication_required"
	DeclineCodeInternalError          = "internal_error"
)

var declineCodeErrorTypes = map[string]BillErrorType{
	DeclineCodeCallIssuer:             BillErrorTypeContactCardIssuer,
	DeclineCodeDoNotHonor:             BillErrorTypeContactCardIssuer,
	DeclineCodeCardDeclined:           BillErrorTypeContactCardIssuer,
	DeclineCodeInsufficientFunds:      BillErrorTypeInsufficientFunds,
	DeclineCodeExpiredCard:            BillErrorTypePaymentMethodHasExpired,
	DeclineCodeAuthenticationRequired: BillErrorTypeRequiresAuthenticatePayment,
	DeclineCodeInternalError:          BillErrorTypeOtherMaven,
}

// ErrorTypeForDeclineCode maps a gateway failure reason to a BillErrorType.
// Unrecognized reasons map to BillErrorTypeUnknown.
func ErrorTypeForDeclineCode(code string) BillErrorType {
	if errorType, ok := declineCodeErrorTypes[code]; ok {
		return errorType
	}
	return BillErrorTypeUnknown
}
