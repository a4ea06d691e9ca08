package repositories

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	BankTransactionRepo BankTransactionRepositoryFacade
	LedgerEntryRepo     LedgerEntryRepositoryFacade
	CategoryRepo        CategoryRepository
	CounterpartyRepo    CounterpartyRepository
	SummaryRepo         SummaryRepository
}
