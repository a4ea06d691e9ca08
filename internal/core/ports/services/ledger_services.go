package services

import (
	"context"

	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/dto"
	"github.com/finledger/finledger/internal/query"
)

// LedgerSvc is the search and CRUD surface over ledger entries. Every search
// endpoint shares the same composer; the ResourceSpec chooses the window
// dressing (response key, counterparty field name, sort allow-list).
type LedgerSvc interface {
	SearchEntries(ctx context.Context, userID string, req dto.SearchEntriesRequest, spec query.ResourceSpec) (*dto.SearchEntriesResult, error)

	CreateEntry(ctx context.Context, userID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error)
	GetEntry(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
}
