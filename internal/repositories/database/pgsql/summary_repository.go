package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finledger/finledger/internal/apperrors"
	"github.com/finledger/finledger/internal/core/domain"
	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	"github.com/finledger/finledger/internal/query"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSummaryRepository struct {
	BaseRepository
}

func newPgxSummaryRepository(pool *pgxpool.Pool) portsrepo.SummaryRepository {
	return &PgxSummaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SummaryRepository = (*PgxSummaryRepository)(nil)

func applyPeriodFilter(b *query.Builder, userID string, from, to time.Time, currency string) {
	b.And("user_id = ?", userID)
	b.And("entry_date >= ?", from)
	b.And("entry_date <= ?", to)
	if currency != "" {
		b.And("currency = ?", currency)
	}
}

func (r *PgxSummaryRepository) CategoryTotals(ctx context.Context, userID string, entryType domain.EntryType, from, to time.Time, currency string) ([]domain.CategorySummary, error) {
	b := query.NewBuilder()
	applyPeriodFilter(b, userID, from, to, currency)
	b.And("type = ?", string(entryType))

	sql := `
		SELECT c.category_id, c.key, c.name_en, c.color, c.icon,
		       SUM(e.amount), COUNT(*)
		FROM (SELECT category_id, amount FROM ledger_entries` + b.WhereSQL() + `) e
		JOIN categories c ON c.category_id = e.category_id
		GROUP BY c.category_id, c.key, c.name_en, c.color, c.icon
		ORDER BY SUM(e.amount) DESC;
	`
	rows, err := r.Pool.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate category totals", err)
	}
	defer rows.Close()

	summaries := []domain.CategorySummary{}
	for rows.Next() {
		var s domain.CategorySummary
		err := rows.Scan(
			&s.CategoryID,
			&s.CategoryKey,
			&s.CategoryName,
			&s.CategoryColor,
			&s.CategoryIcon,
			&s.Total,
			&s.Count,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category summaries", err)
	}
	return summaries, nil
}

func (r *PgxSummaryRepository) LatestEntries(ctx context.Context, userID string, from, to time.Time, currency string, limit int) ([]domain.LedgerEntry, error) {
	b := query.NewBuilder()
	applyPeriodFilter(b, userID, from, to, currency)

	window := fmt.Sprintf(" ORDER BY entry_date DESC LIMIT $%d", b.NextPlaceholder())
	sql := joinedSelect(b.WhereSQL(), window) + ` ORDER BY e.entry_date DESC;`
	args := append(b.Args(), limit)
	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query latest entries", err)
	}
	defer rows.Close()

	ds := []domain.LedgerEntry{}
	for rows.Next() {
		d, err := scanJoinedLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan latest entry", err)
		}
		ds = append(ds, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating latest entries", err)
	}
	return ds, nil
}
