package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finledger/finledger/internal/apperrors"
	"github.com/finledger/finledger/internal/core/domain"
	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/query"
	"github.com/finledger/finledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerEntryRepository struct {
	BaseRepository
}

func newPgxLedgerEntryRepository(pool *pgxpool.Pool) portsrepo.LedgerEntryRepositoryFacade {
	return &PgxLedgerEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*PgxLedgerEntryRepository)(nil)

const ledgerEntryColumns = `entry_id, user_id, type, title, description, amount, currency, category_id, counterparty_id, entry_date, periodicity, bank_transaction_id, tags, created_at, updated_at`

// joinedEntrySelect wraps a filtered ledger_entries subquery and joins
// reference metadata outside of it, so filter conditions never see ambiguous
// column names. The %s slots take the inner WHERE / ORDER BY / LIMIT clauses.
const joinedEntrySelect = `
	SELECT
		e.entry_id, e.user_id, e.type, e.title, e.description, e.amount, e.currency,
		e.category_id, e.counterparty_id, e.entry_date, e.periodicity,
		e.bank_transaction_id, e.tags, e.created_at, e.updated_at,
		c.key, c.name_en, c.name_es, c.color, c.icon,
		cp.key, cp.name, cp.type, cp.logo
	FROM (
		SELECT ` + ledgerEntryColumns + ` FROM ledger_entries%s%s
	) e
	JOIN categories c ON c.category_id = e.category_id
	LEFT JOIN counterparties cp ON cp.counterparty_id = e.counterparty_id`

func joinedSelect(where, window string) string {
	return fmt.Sprintf(joinedEntrySelect, where, window)
}

func scanJoinedLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		m       models.LedgerEntry
		rawTags []byte
		catKey  string
		nameEn  string
		nameEs  string
		color   string
		icon    string
		cpKey   *string
		cpName  *string
		cpType  *string
		cpLogo  *string
	)
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.Type,
		&m.Title,
		&m.Description,
		&m.Amount,
		&m.Currency,
		&m.CategoryID,
		&m.CounterpartyID,
		&m.EntryDate,
		&m.Periodicity,
		&m.BankTransactionID,
		&rawTags,
		&m.CreatedAt,
		&m.UpdatedAt,
		&catKey,
		&nameEn,
		&nameEs,
		&color,
		&icon,
		&cpKey,
		&cpName,
		&cpType,
		&cpLogo,
	)
	if err != nil {
		return nil, err
	}
	if len(rawTags) > 0 {
		if err := json.Unmarshal(rawTags, &m.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for entry %s: %w", m.EntryID, err)
		}
	}

	d := mapping.ToDomainLedgerEntry(m)
	d.Category = &domain.Category{
		CategoryID: m.CategoryID,
		UserID:     m.UserID,
		Key:        catKey,
		Name:       domain.CategoryName{En: nameEn, Es: nameEs},
		Color:      color,
		Icon:       icon,
	}
	if cpKey != nil {
		d.Counterparty = &domain.Counterparty{
			CounterpartyID: d.CounterpartyID,
			UserID:         m.UserID,
			Key:            *cpKey,
			Name:           *cpName,
			Type:           domain.CounterpartyType(*cpType),
		}
		if cpLogo != nil {
			d.Counterparty.Logo = *cpLogo
		}
	}
	return &d, nil
}

func (r *PgxLedgerEntryRepository) FindEntryByID(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error) {
	sql := fmt.Sprintf(joinedEntrySelect, " WHERE user_id = $1 AND entry_id = $2", "") + `;`
	d, err := scanJoinedLedgerEntry(r.Pool.QueryRow(ctx, sql, userID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	return d, nil
}

func (r *PgxLedgerEntryRepository) FindEntryByBankTransactionID(ctx context.Context, userID, bankTransactionID string) (*domain.LedgerEntry, error) {
	sql := fmt.Sprintf(joinedEntrySelect, " WHERE user_id = $1 AND bank_transaction_id = $2", "") + `;`
	d, err := scanJoinedLedgerEntry(r.Pool.QueryRow(ctx, sql, userID, bankTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry for bank transaction %s: %w", bankTransactionID, err)
	}
	return d, nil
}

func (r *PgxLedgerEntryRepository) SearchEntries(ctx context.Context, filters query.EntryFilters, userID string, sort query.Sort, page query.Pagination) ([]domain.LedgerEntry, int64, error) {
	b := query.NewBuilder()
	filters.Apply(b, userID)

	var total int64
	countSQL := `SELECT COUNT(*) FROM ledger_entries` + b.WhereSQL() + `;`
	if err := r.Pool.QueryRow(ctx, countSQL, b.Args()...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count ledger entries", err)
	}

	window := fmt.Sprintf("%s LIMIT $%d OFFSET $%d", sort.OrderBySQL(), b.NextPlaceholder(), b.NextPlaceholder()+1)
	listSQL := fmt.Sprintf(joinedEntrySelect, b.WhereSQL(), window) + sort.OrderBySQLPrefixed("e.") + `;`
	args := append(b.Args(), page.Limit, page.Offset)
	rows, err := r.Pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	ds := []domain.LedgerEntry{}
	for rows.Next() {
		d, err := scanJoinedLedgerEntry(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan ledger entry", err)
		}
		ds = append(ds, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating ledger entries", err)
	}
	return ds, total, nil
}

func (r *PgxLedgerEntryRepository) SumEntryAmounts(ctx context.Context, filters query.EntryFilters, userID string) (decimal.Decimal, error) {
	b := query.NewBuilder()
	filters.Apply(b, userID)

	var sum decimal.Decimal
	sql := `SELECT COALESCE(SUM(amount), 0) FROM ledger_entries` + b.WhereSQL() + `;`
	if err := r.Pool.QueryRow(ctx, sql, b.Args()...).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum ledger entry amounts", err)
	}
	return sum, nil
}

func (r *PgxLedgerEntryRepository) LinkedBankTransactionIDs(ctx context.Context, userID string) ([]string, error) {
	sql := `SELECT bank_transaction_id FROM ledger_entries WHERE user_id = $1 AND bank_transaction_id IS NOT NULL;`
	rows, err := r.Pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query linked bank transaction ids", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan linked bank transaction id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating linked bank transaction ids", err)
	}
	return ids, nil
}

func insertLedgerEntry(ctx context.Context, q queryExecer, m models.LedgerEntry) error {
	tags, err := json.Marshal(m.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	sql := `
		INSERT INTO ledger_entries (entry_id, user_id, type, title, description, amount, currency, category_id, counterparty_id, entry_date, periodicity, bank_transaction_id, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = q.Exec(ctx, sql,
		m.EntryID,
		m.UserID,
		m.Type,
		m.Title,
		m.Description,
		m.Amount,
		m.Currency,
		m.CategoryID,
		m.CounterpartyID,
		m.EntryDate,
		m.Periodicity,
		m.BankTransactionID,
		tags,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *PgxLedgerEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if err := insertLedgerEntry(ctx, r.Pool, mapping.ToModelLedgerEntry(entry)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("referenced category or counterparty does not exist")
		}
		return apperrors.NewAppError(500, "failed to save ledger entry", err)
	}
	return nil
}

func (r *PgxLedgerEntryRepository) SaveLinkedEntry(ctx context.Context, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertLedgerEntry(ctx, tx, mapping.ToModelLedgerEntry(entry)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_ledger_entries_bank_transaction":
				// Lost the race: another request claimed the transaction between
				// our pre-check and this insert. Report who won.
				_ = r.Rollback(ctx, tx)
				return r.duplicateLinkError(ctx, entry.BankTransactionID)
			case pgErr.Code == "23503":
				return apperrors.NewValidationFailedError("referenced category or counterparty does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save linked ledger entry", err)
	}

	// Linking supersedes any earlier dismissal of the source transaction.
	_, err = tx.Exec(ctx,
		`UPDATE bank_transactions SET dismissed = FALSE, dismiss_note = NULL, updated_at = NOW() WHERE user_id = $1 AND bank_transaction_id = $2;`,
		entry.UserID, entry.BankTransactionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear dismissal on linked bank transaction", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxLedgerEntryRepository) duplicateLinkError(ctx context.Context, bankTransactionID string) error {
	var existingID string
	err := r.Pool.QueryRow(ctx,
		`SELECT entry_id FROM ledger_entries WHERE bank_transaction_id = $1;`,
		bankTransactionID,
	).Scan(&existingID)
	if err != nil {
		return apperrors.NewConflictError("bank transaction " + bankTransactionID + " is already linked")
	}
	return &apperrors.DuplicateLinkError{BankTransactionID: bankTransactionID, ExistingEntryID: existingID}
}

func (r *PgxLedgerEntryRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	tags, err := json.Marshal(m.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	sql := `
		UPDATE ledger_entries SET
			title = $1,
			description = $2,
			amount = $3,
			currency = $4,
			category_id = $5,
			counterparty_id = $6,
			entry_date = $7,
			periodicity = $8,
			tags = $9,
			updated_at = $10
		WHERE user_id = $11 AND entry_id = $12;
	`
	tag, err := r.Pool.Exec(ctx, sql,
		m.Title,
		m.Description,
		m.Amount,
		m.Currency,
		m.CategoryID,
		m.CounterpartyID,
		m.EntryDate,
		m.Periodicity,
		tags,
		m.UpdatedAt,
		m.UserID,
		m.EntryID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("referenced category or counterparty does not exist")
		}
		return apperrors.NewAppError(500, "failed to update ledger entry "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerEntryRepository) DeleteEntry(ctx context.Context, userID, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE user_id = $1 AND entry_id = $2;`, userID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete ledger entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
