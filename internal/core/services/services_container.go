package services

import (
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/platform/config"
	"github.com/lifeline-hq/ledger/internal/platform/events"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Registry = NewRegistryService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo, publisher)
	container.Balance = NewBalanceService(repos.LedgerRepo, repos.AccountRepo, repos.ReportingRepo)
	container.Statement = NewStatementService(repos.ReportingRepo, repos.AccountRepo, repos.LedgerRepo)
	container.Banking = NewBankingService(repos.BankingRepo, repos.AccountRepo, repos.LedgerRepo)
	container.Reconciliation = NewReconciliationService(
		repos.BankingRepo,
		repos.LedgerRepo,
		publisher,
		WithToleranceDays(cfg.ReconToleranceDays),
	)

	return container
}
