package billing

// Config is loaded from config.cue.
type Config struct {
	// Employer bills of these organizations are never charged by the
	// auto-processing sweep.
	ManualOnlyOrganizationIDs []int64

	RefundPolicyAlertsEnabled bool

	TemporalHostPort  string
	TemporalNamespace string
	TaskQueue         string

	PaymentGatewayBaseURL string

	AutoProcessingBatchSize int32
}
