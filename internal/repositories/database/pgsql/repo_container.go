package pgsql

import (
	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		BankTransactionRepo: newPgxBankTransactionRepository(pool),
		LedgerEntryRepo:     newPgxLedgerEntryRepository(pool),
		CategoryRepo:        newPgxCategoryRepository(pool),
		CounterpartyRepo:    newPgxCounterpartyRepository(pool),
		SummaryRepo:         newPgxSummaryRepository(pool),
	}
}
