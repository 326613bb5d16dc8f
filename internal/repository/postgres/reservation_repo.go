package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldbooking/internal/domain"

	"github.com/lib/pq"
)

// dbtx is the subset of *sql.DB and *sql.Tx used by reservationRepository.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type reservationRepository struct {
	DB dbtx
}

func NewReservationRepository(db *sql.DB) domain.ReservationRepository {
	return &reservationRepository{DB: db}
}

const reservationColumns = `id, field_id, user_id, start_time, end_time, status, created_at, updated_at`

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	var status string
	if err := row.Scan(&res.ID, &res.FieldID, &res.UserID, &res.StartTime, &res.EndTime, &status, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	res.Status = domain.ReservationStatus(status)
	return res, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `
		INSERT INTO reservations (field_id, user_id, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		res.FieldID, res.UserID, res.StartTime, res.EndTime, string(res.Status), res.CreatedAt, res.UpdatedAt,
	).Scan(&res.ID)
	switch pqCode(err) {
	case codeExclusionViolation:
		return domain.ErrReservationConflict
	case codeForeignKeyViolation:
		return domain.ErrNotFound
	}
	return err
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) FindByField(ctx context.Context, fieldID string, statuses ...domain.ReservationStatus) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE field_id = $1`
	args := []any{fieldID}
	if len(statuses) > 0 {
		codes := make([]string, len(statuses))
		for i, s := range statuses {
			codes[i] = string(s)
		}
		query += ` AND status = ANY($2)`
		args = append(args, pq.Array(codes))
	}
	query += ` ORDER BY start_time`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *reservationRepository) List(ctx context.Context, filter domain.ReservationFilter, params domain.PaginationParams) ([]*domain.Reservation, int, error) {
	var conds []string
	var args []any
	n := 1
	add := func(column string, value any) {
		conds = append(conds, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if filter.FieldID != "" {
		add("field_id", filter.FieldID)
	}
	if filter.UserID != "" {
		add("user_id", filter.UserID)
	}
	if filter.Status != "" {
		add("status", string(filter.Status))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reservations
		%s
		ORDER BY start_time DESC, id
		LIMIT $%d OFFSET $%d
	`, reservationColumns, where, n, n+1)
	rows, err := r.DB.QueryContext(ctx, query, append(args, params.Limit(), params.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list, err := collectReservations(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, updatedAt time.Time) (*domain.Reservation, error) {
	query := `
		UPDATE reservations SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + reservationColumns
	res, err := scanReservation(r.DB.QueryRowContext(ctx, query, string(status), updatedAt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if pqCode(err) == codeExclusionViolation {
			return nil, domain.ErrReservationConflict
		}
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reservationRepository) DeleteAbandoned(ctx context.Context, id string, cutoff time.Time) (bool, error) {
	query := `DELETE FROM reservations WHERE id = $1 AND status = $2 AND created_at < $3`
	result, err := r.DB.ExecContext(ctx, query, id, string(domain.StatusPending), cutoff)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

type reservationTxRunner struct {
	DB *sql.DB
}

// NewReservationTxRunner returns a runner that serializes work per field with a
// transaction-scoped advisory lock.
func NewReservationTxRunner(db *sql.DB) domain.ReservationTxRunner {
	return &reservationTxRunner{DB: db}
}

func (t *reservationTxRunner) WithFieldLock(ctx context.Context, fieldID string, fn func(repo domain.ReservationRepository) error) error {
	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::uuid::text))`, fieldID); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := fn(&reservationRepository{DB: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
