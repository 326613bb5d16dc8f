package domain

import (
	"context"
	"time"
)

// FieldReport aggregates reservation activity of one field over a reporting period.
// swagger:model FieldReport
type FieldReport struct {
	FieldID          string `json:"field_id"`
	FieldName        string `json:"field_name"`
	ReservationCount int    `json:"reservation_count"`
	BookedMinutes    int64  `json:"booked_minutes"`
	PaidCount        int    `json:"paid_count"`
	Revenue          int64  `json:"revenue"` // minor currency units
}

// ReportRepository runs reporting aggregates over reservations starting in [from, to).
type ReportRepository interface {
	FieldUsage(ctx context.Context, from, to time.Time) ([]*FieldReport, error)
}

// ReportService exposes admin reports.
type ReportService interface {
	FieldUsage(ctx context.Context, from, to time.Time) ([]*FieldReport, error)
}
