package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fieldbooking/internal/domain"
)

type fieldRepository struct {
	DB *sql.DB
}

func NewFieldRepository(db *sql.DB) domain.FieldRepository {
	return &fieldRepository{DB: db}
}

const fieldColumns = `id, name, description, location, price_per_hour, active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanField(row rowScanner) (*domain.Field, error) {
	f := &domain.Field{}
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &f.Location, &f.PricePerHour, &f.Active, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fieldRepository) Create(ctx context.Context, f *domain.Field) error {
	query := `
		INSERT INTO fields (name, description, location, price_per_hour, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, f.Name, f.Description, f.Location, f.PricePerHour, f.Active, f.CreatedAt, f.UpdatedAt).Scan(&f.ID)
}

func (r *fieldRepository) GetByID(ctx context.Context, id string) (*domain.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields WHERE id = $1`
	f, err := scanField(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *fieldRepository) List(ctx context.Context, activeOnly bool, params domain.PaginationParams) ([]*domain.Field, int, error) {
	where := ""
	if activeOnly {
		where = "WHERE active = TRUE"
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM fields `+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM fields
		%s
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`, fieldColumns, where)
	rows, err := r.DB.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var fields []*domain.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, f)
	}
	return fields, total, rows.Err()
}

func (r *fieldRepository) Update(ctx context.Context, id string, u domain.FieldUpdate) (*domain.Field, error) {
	if u.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Location != nil {
		add("location", *u.Location)
	}
	if u.PricePerHour != nil {
		add("price_per_hour", *u.PricePerHour)
	}
	if u.Active != nil {
		add("active", *u.Active)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE fields SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, fieldColumns)
	f, err := scanField(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *fieldRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM fields WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *fieldRepository) CreateAvailability(ctx context.Context, w *domain.AvailabilityWindow) error {
	query := `
		INSERT INTO availability_windows (field_id, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, w.FieldID, w.StartTime, w.EndTime, w.CreatedAt).Scan(&w.ID)
	if pqCode(err) == codeForeignKeyViolation {
		return domain.ErrNotFound
	}
	return err
}

func (r *fieldRepository) ListAvailability(ctx context.Context, fieldID string) ([]*domain.AvailabilityWindow, error) {
	query := `
		SELECT id, field_id, start_time, end_time, created_at
		FROM availability_windows
		WHERE field_id = $1
		ORDER BY start_time
	`
	rows, err := r.DB.QueryContext(ctx, query, fieldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []*domain.AvailabilityWindow
	for rows.Next() {
		w := &domain.AvailabilityWindow{}
		if err := rows.Scan(&w.ID, &w.FieldID, &w.StartTime, &w.EndTime, &w.CreatedAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *fieldRepository) DeleteAvailability(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM availability_windows WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
