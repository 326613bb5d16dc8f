package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fieldbooking/internal/domain"
)

type reservationService struct {
	guard          *ReservationGuard
	reservations   domain.ReservationRepository
	fields         domain.FieldRepository
	users          domain.UserRepository
	emailService   domain.EmailService
	clock          domain.Clock
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewReservationService creates a ReservationService. emailService may be nil to disable notifications.
func NewReservationService(
	guard *ReservationGuard,
	reservations domain.ReservationRepository,
	fields domain.FieldRepository,
	users domain.UserRepository,
	emailService domain.EmailService,
	clock domain.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ReservationService {
	return &reservationService{
		guard:          guard,
		reservations:   reservations,
		fields:         fields,
		users:          users,
		emailService:   emailService,
		clock:          clock,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *reservationService) Reserve(ctx context.Context, caller domain.Identity, fieldID string, start, end time.Time) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return nil, domain.ErrInvalidRange
	}

	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get field: %w", err)
	}
	if !field.Active {
		return nil, domain.ErrFieldInactive
	}

	windows, err := s.fields.ListAvailability(ctx, field.ID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	if !withinAvailability(windows, start, end) {
		return nil, domain.ErrOutsideAvailability
	}

	// The stored ID keys the field lock, whatever spelling the caller used.
	r, err := s.guard.TryReserve(ctx, field.ID, caller.UserID, start, end, s.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrReservationConflict) || errors.Is(err, domain.ErrInvalidRange) {
			return nil, err
		}
		return nil, fmt.Errorf("reserve: %w", err)
	}

	s.notifyReceived(ctx, r, field)
	return r, nil
}

// withinAvailability reports whether [start, end) fits one window. A field without windows is always open.
func withinAvailability(windows []*domain.AvailabilityWindow, start, end time.Time) bool {
	if len(windows) == 0 {
		return true
	}
	for _, w := range windows {
		if w.Covers(start, end) {
			return true
		}
	}
	return false
}

func (s *reservationService) notifyReceived(ctx context.Context, r *domain.Reservation, field *domain.Field) {
	if s.emailService == nil {
		return
	}
	user, err := s.users.GetByID(ctx, r.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "reservation email skipped", "reservation_id", r.ID, "err", err)
		return
	}
	data := &domain.ReservationReceivedEmailData{
		Email:         user.Email,
		FirstName:     user.Name,
		FieldName:     field.Name,
		ReservationID: r.ID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		HoldMinutes:   int(domain.PendingExpiry / time.Minute),
	}
	if err := s.emailService.SendReservationReceived(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "reservation email failed", "reservation_id", r.ID, "err", err)
	}
}

func (s *reservationService) Get(ctx context.Context, caller domain.Identity, id string) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if r.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

func (s *reservationService) ListMine(ctx context.Context, caller domain.Identity, params domain.PaginationParams) ([]*domain.Reservation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, total, err := s.reservations.List(ctx, domain.ReservationFilter{UserID: caller.UserID}, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	if list == nil {
		list = []*domain.Reservation{}
	}
	return list, total, nil
}

func (s *reservationService) Cancel(ctx context.Context, caller domain.Identity, id string) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	r, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, r, domain.StatusCanceled)
}

func (s *reservationService) List(ctx context.Context, filter domain.ReservationFilter, params domain.PaginationParams) ([]*domain.Reservation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, domain.ErrInvalidInput
	}
	list, total, err := s.reservations.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	if list == nil {
		list = []*domain.Reservation{}
	}
	return list, total, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return s.transition(ctx, r, status)
}

func (s *reservationService) transition(ctx context.Context, r *domain.Reservation, next domain.ReservationStatus) (*domain.Reservation, error) {
	if !r.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidStatusTransition
	}
	updated, err := s.reservations.UpdateStatus(ctx, r.ID, next, s.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update reservation status: %w", err)
	}
	return updated, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}
