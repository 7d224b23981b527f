package service

import (
	"context"
	"fmt"

	"carehub/internal/logger"
	"carehub/internal/model"
	"carehub/internal/repository"
)

// CaregiverService exposes caregiver search and rate maintenance.
type CaregiverService interface {
	Search(ctx context.Context, filter repository.CaregiverSearch) ([]model.CaregiverListing, error)
	ApplyCommission(ctx context.Context) (int64, error)
}

type caregiverService struct {
	repo repository.CaregiverRepository
	log  logger.Logger
}

// NewCaregiverService creates a new caregiver service.
func NewCaregiverService(repo repository.CaregiverRepository, log logger.Logger) CaregiverService {
	return &caregiverService{repo: repo, log: log.With("component", "caregivers")}
}

func (s *caregiverService) Search(ctx context.Context, filter repository.CaregiverSearch) ([]model.CaregiverListing, error) {
	if filter.Category != "" {
		if err := validateCategory(filter.Category); err != nil {
			return nil, err
		}
	}
	rows, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search caregivers: %w", err)
	}
	if rows == nil {
		rows = []model.CaregiverListing{}
	}
	return rows, nil
}

func (s *caregiverService) ApplyCommission(ctx context.Context) (int64, error) {
	n, err := s.repo.ApplyCommission(ctx)
	if err != nil {
		return 0, fmt.Errorf("apply commission: %w", err)
	}
	s.log.Info("commission applied", "caregivers", n)
	return n, nil
}
