package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for reservation operations.
var (
	ErrInvalidRange            = errors.New("start time must be before end time")
	ErrReservationConflict     = errors.New("overlapping reservation")
	ErrInvalidStatusTransition = errors.New("invalid reservation status transition")
)

// PendingExpiry is how long a reservation may stay pending before it is considered abandoned.
const PendingExpiry = 30 * time.Minute

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusPaid      ReservationStatus = "paid"
	StatusCanceled  ReservationStatus = "canceled"
)

// ActiveStatuses are the statuses that hold a field's time slot.
var ActiveStatuses = []ReservationStatus{StatusPending, StatusConfirmed, StatusPaid}

// Valid reports whether s is a known status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPaid, StatusCanceled:
		return true
	}
	return false
}

var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusPaid, StatusCanceled},
	StatusConfirmed: {StatusPaid, StatusCanceled},
	StatusPaid:      {StatusCanceled},
}

// CanTransitionTo reports whether a reservation in status s may move to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation is a booking of a field for [StartTime, EndTime).
// swagger:model Reservation
type Reservation struct {
	ID        string            `json:"id"`
	FieldID   string            `json:"field_id"`
	UserID    string            `json:"user_id"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewReservation returns a pending reservation created at now. ID is set by the repository on create.
func NewReservation(fieldID, userID string, start, end, now time.Time) *Reservation {
	return &Reservation{
		FieldID:   fieldID,
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Overlaps reports whether the reservation conflicts with the candidate window [start, end).
// Boundaries are inclusive: a reservation ending exactly at start conflicts.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return WindowsOverlap(r.StartTime, r.EndTime, start, end)
}

// Abandoned reports whether the reservation is pending and older than PendingExpiry at now.
func (r *Reservation) Abandoned(now time.Time) bool {
	return r.Status == StatusPending && r.CreatedAt.Before(now.Add(-PendingExpiry))
}

// WindowsOverlap is the boundary-inclusive conflict test between an existing window [s, e)
// and a candidate [cs, ce). It holds when s or e falls within [cs, ce], or when the
// existing window strictly contains the candidate; for well-formed windows that is the
// closed-interval intersection s <= ce && cs <= e.
func WindowsOverlap(s, e, cs, ce time.Time) bool {
	return !s.After(ce) && !cs.After(e)
}

// ReservationFilter narrows admin listings. Empty members match everything.
type ReservationFilter struct {
	FieldID string
	UserID  string
	Status  ReservationStatus
}

// ReservationRepository is the reservation record store.
type ReservationRepository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	// FindByField returns the field's reservations, restricted to the given statuses when any are passed.
	FindByField(ctx context.Context, fieldID string, statuses ...ReservationStatus) ([]*Reservation, error)
	List(ctx context.Context, filter ReservationFilter, params PaginationParams) ([]*Reservation, int, error)
	UpdateStatus(ctx context.Context, id string, status ReservationStatus, updatedAt time.Time) (*Reservation, error)
	Delete(ctx context.Context, id string) error
	// DeleteAbandoned deletes the reservation only if it is still pending and was created
	// before cutoff. It reports false, with no error, when the row changed or is gone.
	DeleteAbandoned(ctx context.Context, id string, cutoff time.Time) (bool, error)
}

// ReservationTxRunner runs fn inside one store transaction that holds an exclusive lock
// keyed by fieldID for its whole duration. fn receives a repository bound to that transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type ReservationTxRunner interface {
	WithFieldLock(ctx context.Context, fieldID string, fn func(repo ReservationRepository) error) error
}

// ReservationService is the reservation API used by controllers.
type ReservationService interface {
	Reserve(ctx context.Context, caller Identity, fieldID string, start, end time.Time) (*Reservation, error)
	Get(ctx context.Context, caller Identity, id string) (*Reservation, error)
	ListMine(ctx context.Context, caller Identity, params PaginationParams) ([]*Reservation, int, error)
	Cancel(ctx context.Context, caller Identity, id string) (*Reservation, error)

	List(ctx context.Context, filter ReservationFilter, params PaginationParams) ([]*Reservation, int, error)
	UpdateStatus(ctx context.Context, id string, status ReservationStatus) (*Reservation, error)
	Delete(ctx context.Context, id string) error
}
