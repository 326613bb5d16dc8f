package domain

import (
	"context"
	"errors"
	"time"
)

// ErrFieldInactive is returned when a reservation targets a field that is not accepting bookings.
var ErrFieldInactive = errors.New("field is not accepting reservations")

// ErrOutsideAvailability is returned when a candidate window is not covered by any availability window of the field.
var ErrOutsideAvailability = errors.New("requested time is outside the field's availability")

// Field is a bookable sports field.
// swagger:model Field
type Field struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	PricePerHour int64     `json:"price_per_hour"` // minor currency units
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewField returns a new active Field. ID is set by the repository on create.
func NewField(name, description, location string, pricePerHour int64, createdAt, updatedAt time.Time) *Field {
	return &Field{
		Name:         name,
		Description:  description,
		Location:     location,
		PricePerHour: pricePerHour,
		Active:       true,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// FieldUpdate carries optional field changes; nil members are left unchanged.
type FieldUpdate struct {
	Name         *string
	Description  *string
	Location     *string
	PricePerHour *int64
	Active       *bool
}

// IsEmpty reports whether the update changes nothing.
func (u FieldUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Location == nil && u.PricePerHour == nil && u.Active == nil
}

// AvailabilityWindow is a concrete interval during which a field may be booked.
// swagger:model AvailabilityWindow
type AvailabilityWindow struct {
	ID        string    `json:"id"`
	FieldID   string    `json:"field_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// Covers reports whether [start, end) lies entirely inside the window.
func (w *AvailabilityWindow) Covers(start, end time.Time) bool {
	return !start.Before(w.StartTime) && !end.After(w.EndTime)
}

// FieldRepository defines storage for fields and their availability windows.
type FieldRepository interface {
	Create(ctx context.Context, field *Field) error
	GetByID(ctx context.Context, id string) (*Field, error)
	List(ctx context.Context, activeOnly bool, params PaginationParams) ([]*Field, int, error)
	Update(ctx context.Context, id string, update FieldUpdate) (*Field, error)
	Delete(ctx context.Context, id string) error

	CreateAvailability(ctx context.Context, window *AvailabilityWindow) error
	ListAvailability(ctx context.Context, fieldID string) ([]*AvailabilityWindow, error)
	DeleteAvailability(ctx context.Context, id string) error
}

// FieldService defines field browsing and admin management.
type FieldService interface {
	CreateField(ctx context.Context, field *Field) error
	GetField(ctx context.Context, id string) (*Field, error)
	ListFields(ctx context.Context, includeInactive bool, params PaginationParams) ([]*Field, int, error)
	UpdateField(ctx context.Context, id string, update FieldUpdate) (*Field, error)
	DeleteField(ctx context.Context, id string) error

	AddAvailability(ctx context.Context, fieldID string, start, end time.Time) (*AvailabilityWindow, error)
	ListAvailability(ctx context.Context, fieldID string) ([]*AvailabilityWindow, error)
	RemoveAvailability(ctx context.Context, windowID string) error
}
