package services

import (
	"context"
	"time"

	"github.com/finledger/finledger/internal/core/domain"
)

// SummarySvc computes period-bounded roll-ups over the ledger.
type SummarySvc interface {
	// PeriodSummary aggregates the period into per-category totals for each
	// direction, overall totals, balance, and the latest entries. The output
	// is well-formed even for an empty period.
	PeriodSummary(ctx context.Context, userID string, from, to time.Time, currency string, latestCount int) (*domain.PeriodSummary, error)
}
