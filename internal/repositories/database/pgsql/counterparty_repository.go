package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finledger/finledger/internal/apperrors"
	"github.com/finledger/finledger/internal/core/domain"
	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCounterpartyRepository struct {
	BaseRepository
}

func newPgxCounterpartyRepository(pool *pgxpool.Pool) portsrepo.CounterpartyRepository {
	return &PgxCounterpartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CounterpartyRepository = (*PgxCounterpartyRepository)(nil)

const counterpartyColumns = `counterparty_id, user_id, key, name, type, logo, email, phone, notes, created_at, updated_at`

func scanCounterparty(row pgx.Row) (*models.Counterparty, error) {
	var m models.Counterparty
	err := row.Scan(
		&m.CounterpartyID,
		&m.UserID,
		&m.Key,
		&m.Name,
		&m.Type,
		&m.Logo,
		&m.Email,
		&m.Phone,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxCounterpartyRepository) FindCounterpartyByKey(ctx context.Context, userID, key string) (*domain.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE user_id = $1 AND key = $2;`
	m, err := scanCounterparty(r.Pool.QueryRow(ctx, query, userID, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find counterparty %q: %w", key, err)
	}
	d := mapping.ToDomainCounterparty(*m)
	return &d, nil
}

func (r *PgxCounterpartyRepository) ListCounterparties(ctx context.Context, userID string) ([]domain.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE user_id = $1 ORDER BY key;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query counterparties", err)
	}
	defer rows.Close()

	ms := []models.Counterparty{}
	for rows.Next() {
		m, err := scanCounterparty(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan counterparty", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating counterparties", err)
	}
	return mapping.ToDomainCounterpartySlice(ms), nil
}

func (r *PgxCounterpartyRepository) SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error {
	m := mapping.ToModelCounterparty(counterparty)
	query := `
		INSERT INTO counterparties (counterparty_id, user_id, key, name, type, logo, email, phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CounterpartyID,
		m.UserID,
		m.Key,
		m.Name,
		m.Type,
		m.Logo,
		m.Email,
		m.Phone,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("counterparty key " + counterparty.Key + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save counterparty "+counterparty.Key, err)
	}
	return nil
}

func (r *PgxCounterpartyRepository) DeleteCounterparty(ctx context.Context, userID, key string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM counterparties WHERE user_id = $1 AND key = $2;`, userID, key)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewConflictError("counterparty " + key + " is still referenced by ledger entries")
		}
		return apperrors.NewAppError(500, "failed to delete counterparty "+key, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
