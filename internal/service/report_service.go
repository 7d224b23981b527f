package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"carehub/internal/errors"
	"carehub/internal/model"
	"carehub/internal/repository"
)

// ReportService runs the analytical queries. Aggregates over an empty set come back nil.
type ReportService interface {
	ApplicantCounts(ctx context.Context) ([]model.ApplicantCount, error)
	TotalAcceptedHours(ctx context.Context) (*int64, error)
	AverageAcceptedPay(ctx context.Context) (*decimal.Decimal, error)
	AboveAverageCaregivers(ctx context.Context) ([]model.CaregiverRate, error)
	TotalAcceptedCost(ctx context.Context) (*decimal.Decimal, error)
	AcceptedAppointmentNames(ctx context.Context) ([]model.AppointmentParties, error)
	JobsWithRequirement(ctx context.Context, text string) ([]model.JobRequirement, error)
	WorkHoursByCategory(ctx context.Context, category model.Category) ([]model.AppointmentHours, error)
	MembersSeeking(ctx context.Context, city, houseRule string, category model.Category) ([]model.MemberSeeking, error)
	JobApplications(ctx context.Context) ([]model.JobApplicationView, error)
}

type reportService struct {
	repo repository.ReportRepository
}

// NewReportService creates a new report service.
func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) ApplicantCounts(ctx context.Context) ([]model.ApplicantCount, error) {
	return s.repo.ApplicantCounts(ctx)
}

func (s *reportService) TotalAcceptedHours(ctx context.Context) (*int64, error) {
	total, err := s.repo.TotalAcceptedHours(ctx)
	if err != nil || !total.Valid {
		return nil, err
	}
	return &total.Int64, nil
}

func (s *reportService) AverageAcceptedPay(ctx context.Context) (*decimal.Decimal, error) {
	return nullable(s.repo.AverageAcceptedPay(ctx))
}

func (s *reportService) AboveAverageCaregivers(ctx context.Context) ([]model.CaregiverRate, error) {
	return s.repo.AboveAverageCaregivers(ctx)
}

func (s *reportService) TotalAcceptedCost(ctx context.Context) (*decimal.Decimal, error) {
	return nullable(s.repo.TotalAcceptedCost(ctx))
}

func (s *reportService) AcceptedAppointmentNames(ctx context.Context) ([]model.AppointmentParties, error) {
	return s.repo.AcceptedAppointmentNames(ctx)
}

func (s *reportService) JobsWithRequirement(ctx context.Context, text string) ([]model.JobRequirement, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: search text is required", errors.ErrConstraint)
	}
	return s.repo.JobsWithRequirement(ctx, text)
}

func (s *reportService) WorkHoursByCategory(ctx context.Context, category model.Category) ([]model.AppointmentHours, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return s.repo.WorkHoursByCategory(ctx, category)
}

func (s *reportService) MembersSeeking(ctx context.Context, city, houseRule string, category model.Category) ([]model.MemberSeeking, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return s.repo.MembersSeeking(ctx, city, houseRule, category)
}

func (s *reportService) JobApplications(ctx context.Context) ([]model.JobApplicationView, error) {
	return s.repo.JobApplications(ctx)
}

func nullable(value decimal.NullDecimal, err error) (*decimal.Decimal, error) {
	if err != nil || !value.Valid {
		return nil, err
	}
	return &value.Decimal, nil
}
