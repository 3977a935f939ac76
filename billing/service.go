package billing

import (
	"context"
	"fmt"

	"encore.dev/config"
	"encore.dev/rlog"
	"encore.dev/storage/sqldb"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"encore.app/billing/business/bill"
	"encore.app/billing/business/eligibility"
	"encore.app/billing/business/reconcile"
	"encore.app/billing/domain"
	"encore.app/billing/gateway"
	"encore.app/billing/store"
	"encore.app/billing/workflow"
)

var billingDB = sqldb.NewDatabase("billing", sqldb.DatabaseConfig{
	Migrations: "./db/migrations",
})

var cfg = config.Load[*Config]()

var secrets struct {
	PaymentGatewayAPIKey        string
	PaymentGatewayWebhookSecret string
}

//encore:service
type Service struct {
	business      bill.Business
	reconciler    reconcile.Business
	temporal      client.Client
	worker        worker.Worker
	webhookSecret string
	alertsEnabled bool
	autoBatchSize int32
}

func initService() (*Service, error) {
	pgxdb := sqldb.Driver(billingDB)
	repo := store.NewStore(pgxdb)
	stateMachine := domain.NewBillStateMachine(pgxdb)

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create temporal client: %w", err)
	}

	billBusiness := bill.NewBillBusiness(
		repo.Bills,
		repo.Records,
		stateMachine,
		newTemporalDispatcher(c, cfg.TaskQueue),
		eligibility.NewEvaluator(cfg.ManualOnlyOrganizationIDs),
	)
	reconciler := reconcile.NewReconcileBusiness(stateMachine)

	workflow.SetActivityDependencies(
		billBusiness,
		reconciler,
		gateway.NewHTTPClient(cfg.PaymentGatewayBaseURL, secrets.PaymentGatewayAPIKey),
	)

	w := worker.New(c, cfg.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflow.ChargeBill)
	w.RegisterWorkflow(workflow.RefundBill)
	w.RegisterActivity(workflow.SubmitChargeActivity)
	w.RegisterActivity(workflow.SubmitRefundActivity)
	w.RegisterActivity(workflow.ReportChargeFailureActivity)

	if err := w.Start(); err != nil {
		c.Close()
		return nil, fmt.Errorf("could not start temporal worker: %w", err)
	}

	rlog.Info("billing service initialized", "task_queue", cfg.TaskQueue, "manual_only_organizations", len(cfg.ManualOnlyOrganizationIDs))

	return &Service{
		business:      billBusiness,
		reconciler:    reconciler,
		temporal:      c,
		worker:        w,
		webhookSecret: secrets.PaymentGatewayWebhookSecret,
		alertsEnabled: cfg.RefundPolicyAlertsEnabled,
		autoBatchSize: cfg.AutoProcessingBatchSize,
	}, nil
}

func (s *Service) Shutdown(force context.Context) {
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.temporal != nil {
		s.temporal.Close()
	}
}
