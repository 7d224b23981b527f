package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"carehub/internal/db"
	"carehub/internal/logger"
)

// ProvisionService rebuilds the schema and loads the demo data set.
type ProvisionService interface {
	ResetSchema(ctx context.Context) error
	Populate(ctx context.Context) (*db.SeedSummary, error)
}

type provisionService struct {
	db  *gorm.DB
	log logger.Logger
}

// NewProvisionService creates a new provisioning service.
func NewProvisionService(gormDB *gorm.DB, log logger.Logger) ProvisionService {
	return &provisionService{db: gormDB, log: log.With("component", "provision")}
}

// ResetSchema drops every table and recreates them empty.
func (s *provisionService) ResetSchema(ctx context.Context) error {
	if err := db.CreateSchema(ctx, s.db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	s.log.Warn("schema recreated, all data removed")
	return nil
}

// Populate replaces all rows with the demo data set.
func (s *provisionService) Populate(ctx context.Context) (*db.SeedSummary, error) {
	summary, err := db.Seed(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	s.log.Info("demo data loaded",
		"users", summary.Users,
		"jobs", summary.Jobs,
		"applications", summary.Applications,
		"appointments", summary.Appointments,
	)
	return summary, nil
}
