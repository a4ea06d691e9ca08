package repositories

import (
	"context"
	"time"

	"github.com/finledger/finledger/internal/core/domain"
)

// SummaryRepository provides the aggregation reads behind the period summary.
type SummaryRepository interface {
	// CategoryTotals groups matching entries of one type by category,
	// returning per-category total and count with category metadata joined,
	// sorted by total descending. Zero matches yield an empty slice.
	CategoryTotals(ctx context.Context, userID string, entryType domain.EntryType, from, to time.Time, currency string) ([]domain.CategorySummary, error)

	// LatestEntries returns the most recent entries of both types inside the
	// period, sorted by date descending, with reference metadata joined.
	LatestEntries(ctx context.Context, userID string, from, to time.Time, currency string, limit int) ([]domain.LedgerEntry, error)
}
