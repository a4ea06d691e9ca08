package services

import (
	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Reference service first since the others resolve through it.
	container.Reference = NewReferenceService(repos.CategoryRepo, repos.CounterpartyRepo)

	container.Reconciliation = NewReconciliationService(repos.BankTransactionRepo, repos.LedgerEntryRepo, container.Reference)
	container.Ledger = NewLedgerService(repos.LedgerEntryRepo, container.Reference)
	container.Summary = NewSummaryService(repos.SummaryRepo)

	return container
}
