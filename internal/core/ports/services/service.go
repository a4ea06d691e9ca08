package services

// ServiceContainer bundles every service the handlers need.
type ServiceContainer struct {
	Reconciliation ReconciliationSvc
	Ledger         LedgerSvc
	Summary        SummarySvc
	Reference      ReferenceSvc
}
