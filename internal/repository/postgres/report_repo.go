package postgres

import (
	"context"
	"database/sql"
	"time"

	"fieldbooking/internal/domain"
)

type reportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{DB: db}
}

// FieldUsage includes every field, with zero counts when it had no reservations in the period.
func (r *reportRepository) FieldUsage(ctx context.Context, from, to time.Time) ([]*domain.FieldReport, error) {
	query := `
		WITH booked AS (
			SELECT field_id, status,
				(EXTRACT(EPOCH FROM (end_time - start_time)) / 60)::BIGINT AS minutes
			FROM reservations
			WHERE start_time >= $1 AND start_time < $2 AND status <> 'canceled'
		)
		SELECT f.id, f.name,
			COUNT(b.field_id) AS reservation_count,
			COALESCE(SUM(b.minutes), 0)::BIGINT AS booked_minutes,
			COUNT(b.field_id) FILTER (WHERE b.status = 'paid') AS paid_count,
			div(COALESCE(SUM(b.minutes * f.price_per_hour) FILTER (WHERE b.status = 'paid'), 0), 60)::BIGINT AS revenue
		FROM fields f
		LEFT JOIN booked b ON b.field_id = f.id
		GROUP BY f.id, f.name
		ORDER BY f.name, f.id
	`
	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.FieldReport
	for rows.Next() {
		fr := &domain.FieldReport{}
		if err := rows.Scan(&fr.FieldID, &fr.FieldName, &fr.ReservationCount, &fr.BookedMinutes, &fr.PaidCount, &fr.Revenue); err != nil {
			return nil, err
		}
		reports = append(reports, fr)
	}
	return reports, rows.Err()
}
