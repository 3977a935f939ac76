package billing

import (
	"context"
	"time"

	"encore.dev/cron"
	"encore.dev/rlog"
)

var _ = cron.NewJob("auto-process-employer-bills", cron.JobConfig{
	Title:    "Charge employer bills whose processing window has opened",
	Every:    1 * cron.Hour,
	Endpoint: AutoProcessEmployerBills,
})

type AutoProcessResponse struct {
	Charged      []string `json:"charged"`
	ManualReview []string `json:"manual_review"`
	Skipped      []string `json:"skipped"`
	Failed       []string `json:"failed"`
}

//encore:api private method=POST path=/internal/bills/auto-process
func (s *Service) AutoProcessEmployerBills(ctx context.Context) (*AutoProcessResponse, error) {
	batchSize := s.autoBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	result, err := s.business.AutoProcessEmployerBills(ctx, time.Now(), batchSize)
	if err != nil {
		rlog.Error("auto-processing sweep failed", "error", err)
		return nil, err
	}

	response := &AutoProcessResponse{
		Charged:      make([]string, 0, len(result.Charged)),
		ManualReview: make([]string, 0, len(result.ManualReview)),
		Skipped:      make([]string, 0, len(result.Skipped)),
		Failed:       make([]string, 0, len(result.Failed)),
	}
	for _, id := range result.Charged {
		response.Charged = append(response.Charged, id.String())
		s.publishCurrentStatus(id, "auto_process")
	}
	for _, id := range result.ManualReview {
		response.ManualReview = append(response.ManualReview, id.String())
	}
	for _, id := range result.Skipped {
		response.Skipped = append(response.Skipped, id.String())
	}
	for _, id := range result.Failed {
		response.Failed = append(response.Failed, id.String())
	}

	rlog.Info("auto-processing sweep finished",
		"charged", len(result.Charged),
		"manual_review", len(result.ManualReview),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed))

	return response, nil
}
