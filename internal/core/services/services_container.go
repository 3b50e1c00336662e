package services

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service comes first; the posting engine and reports depend on it.
	container.Account = NewAccountService(repos.AccountRepo)
	container.Posting = NewPostingService(repos.PostingRepo, container.Account)
	container.Ledger = NewLedgerService(repos.ReportingRepo, repos.PostingRepo, container.Account)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Account)

	return container
}
