package services

// ServiceContainer holds instances of all the application services.
// Handlers receive this container and pick the facades they need.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Posting   PostingSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
}
