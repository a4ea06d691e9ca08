package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finledger/finledger/internal/core/domain"
	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLatestCount = 5
	maxLatestCount     = 100
)

// summaryService computes period-bounded roll-ups over the ledger. The three
// aggregation legs are independent reads and run concurrently.
type summaryService struct {
	BaseService
	summaryRepo portsrepo.SummaryRepository
}

// NewSummaryService creates a new summary service.
func NewSummaryService(summaryRepo portsrepo.SummaryRepository) portssvc.SummarySvc {
	return &summaryService{summaryRepo: summaryRepo}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

func (s *summaryService) PeriodSummary(ctx context.Context, userID string, from, to time.Time, currency string, latestCount int) (*domain.PeriodSummary, error) {
	if latestCount <= 0 {
		latestCount = defaultLatestCount
	}
	if latestCount > maxLatestCount {
		latestCount = maxLatestCount
	}

	var (
		expenseTotals []domain.CategorySummary
		incomeTotals  []domain.CategorySummary
		latest        []domain.LedgerEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenseTotals, err = s.summaryRepo.CategoryTotals(gctx, userID, domain.EntryTypeExpense, from, to, currency)
		return err
	})
	g.Go(func() error {
		var err error
		incomeTotals, err = s.summaryRepo.CategoryTotals(gctx, userID, domain.EntryTypeIncome, from, to, currency)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.summaryRepo.LatestEntries(gctx, userID, from, to, currency, latestCount)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "failed to compute period summary", "user_id", userID)
		return nil, fmt.Errorf("failed to compute period summary: %w", err)
	}

	expensesTotal := sumCategoryTotals(expenseTotals)
	incomesTotal := sumCategoryTotals(incomeTotals)

	return &domain.PeriodSummary{
		Period: domain.SummaryPeriod{
			From:     from,
			To:       to,
			Currency: currency,
		},
		Expenses: domain.SummarySide{
			Total:      expensesTotal,
			ByCategory: expenseTotals,
		},
		Incomes: domain.SummarySide{
			Total:      incomesTotal,
			ByCategory: incomeTotals,
		},
		Balance:            incomesTotal.Sub(expensesTotal),
		LatestTransactions: latest,
	}, nil
}

func sumCategoryTotals(summaries []domain.CategorySummary) decimal.Decimal {
	total := decimal.Zero
	for _, summary := range summaries {
		total = total.Add(summary.Total)
	}
	return total
}
