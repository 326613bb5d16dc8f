package services

import (
	"context"
	"time"

	"fieldbooking/internal/domain"
)

// ReservationGuard admits reservation windows for a field while keeping the field's active
// reservations pairwise non-overlapping. It removes abandoned pending holds lazily, only
// when they intersect a window being checked.
//
// Store errors are returned unchanged and never retried.
type ReservationGuard struct {
	tx domain.ReservationTxRunner
}

// NewReservationGuard returns a guard whose TryReserve runs inside tx's per-field lock.
func NewReservationGuard(tx domain.ReservationTxRunner) *ReservationGuard {
	return &ReservationGuard{tx: tx}
}

// SweepExpired deletes the field's pending reservations created before now-PendingExpiry
// whose windows intersect [start, end], and returns how many were removed.
func (g *ReservationGuard) SweepExpired(ctx context.Context, repo domain.ReservationRepository, fieldID string, start, end, now time.Time) (int, error) {
	pending, err := repo.FindByField(ctx, fieldID, domain.StatusPending)
	if err != nil {
		return 0, err
	}
	cutoff := now.Add(-domain.PendingExpiry)
	removed := 0
	for _, r := range pending {
		if !r.Abandoned(now) || !r.Overlaps(start, end) {
			continue
		}
		// Status changes do not take the field lock; a row paid or removed since the read is skipped.
		deleted, err := repo.DeleteAbandoned(ctx, r.ID, cutoff)
		if err != nil {
			return removed, err
		}
		if deleted {
			removed++
		}
	}
	return removed, nil
}

// HasOverlap reports whether an active reservation of the field conflicts with [start, end).
// Callers sweep first; an unswept abandoned hold still counts here.
func (g *ReservationGuard) HasOverlap(ctx context.Context, repo domain.ReservationRepository, fieldID string, start, end time.Time) (bool, error) {
	active, err := repo.FindByField(ctx, fieldID, domain.ActiveStatuses...)
	if err != nil {
		return false, err
	}
	for _, r := range active {
		if r.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// TryReserve sweeps, checks and inserts a pending reservation as one locked transaction.
// It fails with domain.ErrInvalidRange before touching the store when start >= end, and
// with domain.ErrReservationConflict when the window is taken.
//
// A conflict rolls back the whole transaction, including the sweep, so abandoned holds
// removed during a failed attempt reappear and are swept again by the next attempt.
func (g *ReservationGuard) TryReserve(ctx context.Context, fieldID, userID string, start, end, now time.Time) (*domain.Reservation, error) {
	if !start.Before(end) {
		return nil, domain.ErrInvalidRange
	}
	var created *domain.Reservation
	err := g.tx.WithFieldLock(ctx, fieldID, func(repo domain.ReservationRepository) error {
		if _, err := g.SweepExpired(ctx, repo, fieldID, start, end, now); err != nil {
			return err
		}
		taken, err := g.HasOverlap(ctx, repo, fieldID, start, end)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrReservationConflict
		}
		r := domain.NewReservation(fieldID, userID, start, end, now)
		if err := repo.Create(ctx, r); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
