package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldbooking/internal/domain"
)

type fieldService struct {
	fieldRepo      domain.FieldRepository
	clock          domain.Clock
	contextTimeout time.Duration
}

// NewFieldService creates a FieldService backed by the given repository.
func NewFieldService(fieldRepo domain.FieldRepository, clock domain.Clock, timeout time.Duration) domain.FieldService {
	return &fieldService{
		fieldRepo:      fieldRepo,
		clock:          clock,
		contextTimeout: timeout,
	}
}

func (s *fieldService) CreateField(ctx context.Context, field *domain.Field) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	field.Name = strings.TrimSpace(field.Name)
	if field.Name == "" || field.PricePerHour < 0 {
		return domain.ErrInvalidInput
	}
	now := s.clock.Now()
	field.CreatedAt = now
	field.UpdatedAt = now
	if err := s.fieldRepo.Create(ctx, field); err != nil {
		return fmt.Errorf("create field: %w", err)
	}
	return nil
}

func (s *fieldService) GetField(ctx context.Context, id string) (*domain.Field, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	field, err := s.fieldRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get field: %w", err)
	}
	return field, nil
}

func (s *fieldService) ListFields(ctx context.Context, includeInactive bool, params domain.PaginationParams) ([]*domain.Field, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	fields, total, err := s.fieldRepo.List(ctx, !includeInactive, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list fields: %w", err)
	}
	if fields == nil {
		fields = []*domain.Field{}
	}
	return fields, total, nil
}

func (s *fieldService) UpdateField(ctx context.Context, id string, update domain.FieldUpdate) (*domain.Field, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		update.Name = &name
	}
	if update.PricePerHour != nil && *update.PricePerHour < 0 {
		return nil, domain.ErrInvalidInput
	}
	field, err := s.fieldRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update field: %w", err)
	}
	return field, nil
}

func (s *fieldService) DeleteField(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.fieldRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete field: %w", err)
	}
	return nil
}

func (s *fieldService) AddAvailability(ctx context.Context, fieldID string, start, end time.Time) (*domain.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return nil, domain.ErrInvalidRange
	}
	if _, err := s.fieldRepo.GetByID(ctx, fieldID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get field: %w", err)
	}
	w := &domain.AvailabilityWindow{
		FieldID:   fieldID,
		StartTime: start,
		EndTime:   end,
		CreatedAt: s.clock.Now(),
	}
	if err := s.fieldRepo.CreateAvailability(ctx, w); err != nil {
		return nil, fmt.Errorf("create availability: %w", err)
	}
	return w, nil
}

func (s *fieldService) ListAvailability(ctx context.Context, fieldID string) ([]*domain.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.fieldRepo.GetByID(ctx, fieldID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get field: %w", err)
	}
	windows, err := s.fieldRepo.ListAvailability(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	if windows == nil {
		windows = []*domain.AvailabilityWindow{}
	}
	return windows, nil
}

func (s *fieldService) RemoveAvailability(ctx context.Context, windowID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.fieldRepo.DeleteAvailability(ctx, windowID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete availability: %w", err)
	}
	return nil
}
