package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finledger/finledger/internal/apperrors"
	"github.com/finledger/finledger/internal/core/domain"
	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/query"
	"github.com/finledger/finledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBankTransactionRepository struct {
	BaseRepository
}

func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryFacade {
	return &PgxBankTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankTransactionRepositoryFacade = (*PgxBankTransactionRepository)(nil)

const bankTransactionColumns = `bank_transaction_id, user_id, account_id, bank_id, type, amount, currency, description, merchant_name, occurred_at, processed, notified, dismissed, dismiss_note, created_at, updated_at`

func scanBankTransaction(row pgx.Row) (*models.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.BankTransactionID,
		&m.UserID,
		&m.AccountID,
		&m.BankID,
		&m.Type,
		&m.Amount,
		&m.Currency,
		&m.Description,
		&m.MerchantName,
		&m.OccurredAt,
		&m.Processed,
		&m.Notified,
		&m.Dismissed,
		&m.DismissNote,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// applyBankTransactionFilters translates the filter set into WHERE conditions.
// The review-status filter needs the link table, so it is expressed as an
// EXISTS probe against ledger_entries rather than a join.
func applyBankTransactionFilters(b *query.Builder, userID string, f domain.BankTransactionFilters) {
	b.And("user_id = ?", userID)
	if f.AccountID != "" {
		b.And("account_id = ?", f.AccountID)
	}
	if f.BankID != "" {
		b.And("bank_id = ?", f.BankID)
	}
	if f.Type != "" {
		b.And("type = ?", f.Type)
	}
	if f.Processed != nil {
		b.And("processed = ?", *f.Processed)
	}
	if f.From != nil {
		b.And("occurred_at >= ?", *f.From)
	}
	if f.To != nil {
		b.And("occurred_at <= ?", *f.To)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		b.And("(description ILIKE ? OR merchant_name ILIKE ?)", pattern, pattern)
	}
	const linkedProbe = "EXISTS (SELECT 1 FROM ledger_entries le WHERE le.bank_transaction_id = bank_transactions.bank_transaction_id)"
	switch f.ReviewStatus {
	case domain.ReviewStatusDismissed:
		b.And("dismissed = TRUE")
	case domain.ReviewStatusLinked:
		b.And(linkedProbe)
	case domain.ReviewStatusUnreviewed:
		b.And("NOT " + linkedProbe + " AND dismissed = FALSE")
	}
}

func (r *PgxBankTransactionRepository) FindBankTransactionByID(ctx context.Context, userID, bankTransactionID string) (*domain.BankTransaction, error) {
	sql := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE user_id = $1 AND bank_transaction_id = $2;`
	m, err := scanBankTransaction(r.Pool.QueryRow(ctx, sql, userID, bankTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank transaction %s: %w", bankTransactionID, err)
	}
	d := mapping.ToDomainBankTransaction(*m)
	return &d, nil
}

func (r *PgxBankTransactionRepository) ListBankTransactions(ctx context.Context, userID string, filters domain.BankTransactionFilters, page query.Pagination) ([]domain.BankTransaction, int64, error) {
	b := query.NewBuilder()
	applyBankTransactionFilters(b, userID, filters)

	var total int64
	countSQL := `SELECT COUNT(*) FROM bank_transactions` + b.WhereSQL() + `;`
	if err := r.Pool.QueryRow(ctx, countSQL, b.Args()...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count bank transactions", err)
	}

	listSQL := fmt.Sprintf(
		`SELECT %s FROM bank_transactions%s ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d;`,
		bankTransactionColumns, b.WhereSQL(), b.NextPlaceholder(), b.NextPlaceholder()+1,
	)
	args := append(b.Args(), page.Limit, page.Offset)
	rows, err := r.Pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query bank transactions", err)
	}
	defer rows.Close()

	ms := []models.BankTransaction{}
	for rows.Next() {
		m, err := scanBankTransaction(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan bank transaction", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating bank transactions", err)
	}
	return mapping.ToDomainBankTransactionSlice(ms), total, nil
}

func (r *PgxBankTransactionRepository) BankTransactionStats(ctx context.Context, userID string, filters domain.BankTransactionFilters) (*domain.BankTransactionStats, error) {
	b := query.NewBuilder()
	applyBankTransactionFilters(b, userID, filters)

	sql := `
		SELECT
			COUNT(*),
			COALESCE(SUM(amount) FILTER (WHERE type = 'CREDIT'), 0),
			COALESCE(SUM(ABS(amount)) FILTER (WHERE type = 'DEBIT'), 0),
			COUNT(*) FILTER (WHERE type = 'CREDIT'),
			COUNT(*) FILTER (WHERE type = 'DEBIT'),
			COUNT(*) FILTER (WHERE processed),
			COUNT(*) FILTER (WHERE NOT processed)
		FROM bank_transactions` + b.WhereSQL() + `;`

	var stats domain.BankTransactionStats
	err := r.Pool.QueryRow(ctx, sql, b.Args()...).Scan(
		&stats.TotalTransactions,
		&stats.TotalCredits,
		&stats.TotalDebits,
		&stats.CreditCount,
		&stats.DebitCount,
		&stats.ProcessedCount,
		&stats.UnprocessedCount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate bank transaction stats", err)
	}
	return &stats, nil
}

func (r *PgxBankTransactionRepository) UpsertBankTransaction(ctx context.Context, tx domain.BankTransaction) error {
	m := mapping.ToModelBankTransaction(tx)
	// Redelivery refreshes the source fields but never touches review flags.
	sql := `
		INSERT INTO bank_transactions (bank_transaction_id, user_id, account_id, bank_id, type, amount, currency, description, merchant_name, occurred_at, processed, notified, dismissed, dismiss_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (bank_transaction_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			description = EXCLUDED.description,
			merchant_name = EXCLUDED.merchant_name,
			occurred_at = EXCLUDED.occurred_at,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, sql,
		m.BankTransactionID,
		m.UserID,
		m.AccountID,
		m.BankID,
		m.Type,
		m.Amount,
		m.Currency,
		m.Description,
		m.MerchantName,
		m.OccurredAt,
		m.Processed,
		m.Notified,
		m.Dismissed,
		m.DismissNote,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert bank transaction "+tx.BankTransactionID, err)
	}
	return nil
}

func (r *PgxBankTransactionRepository) UpdateReviewFlags(ctx context.Context, userID, bankTransactionID string, patch domain.ReviewFlagsPatch) (*domain.BankTransaction, error) {
	sets := []string{}
	args := []any{}
	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Processed != nil {
		add("processed", *patch.Processed)
	}
	if patch.Notified != nil {
		add("notified", *patch.Notified)
	}
	if patch.Dismissed != nil {
		add("dismissed", *patch.Dismissed)
	}
	if patch.DismissNote != nil {
		add("dismiss_note", *patch.DismissNote)
	}
	if len(sets) == 0 {
		return nil, apperrors.NewValidationFailedError("no review flags to update")
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, userID, bankTransactionID)
	sql := fmt.Sprintf(
		`UPDATE bank_transactions SET %s WHERE user_id = $%d AND bank_transaction_id = $%d RETURNING %s;`,
		strings.Join(sets, ", "), len(args)-1, len(args), bankTransactionColumns,
	)
	m, err := scanBankTransaction(r.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to update review flags for "+bankTransactionID, err)
	}
	d := mapping.ToDomainBankTransaction(*m)
	return &d, nil
}

func (r *PgxBankTransactionRepository) DeleteBankTransaction(ctx context.Context, userID, bankTransactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM bank_transactions WHERE user_id = $1 AND bank_transaction_id = $2;`, userID, bankTransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete bank transaction "+bankTransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
