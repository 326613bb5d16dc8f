package services

import (
	"context"
	"fmt"
	"time"

	"fieldbooking/internal/domain"
)

// maxReportSpan bounds a single report query.
const maxReportSpan = 366 * 24 * time.Hour

type reportService struct {
	reportRepo     domain.ReportRepository
	contextTimeout time.Duration
}

// NewReportService creates a ReportService over the given repository.
func NewReportService(reportRepo domain.ReportRepository, timeout time.Duration) domain.ReportService {
	return &reportService{reportRepo: reportRepo, contextTimeout: timeout}
}

func (s *reportService) FieldUsage(ctx context.Context, from, to time.Time) ([]*domain.FieldReport, error) {
	if !from.Before(to) {
		return nil, domain.ErrInvalidRange
	}
	if to.Sub(from) > maxReportSpan {
		return nil, fmt.Errorf("%w: report period exceeds one year", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reports, err := s.reportRepo.FieldUsage(ctx, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("field usage report: %w", err)
	}
	if reports == nil {
		reports = []*domain.FieldReport{}
	}
	return reports, nil
}
