package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"carehub/internal/model"
)

// CaregiverSearch narrows a caregiver search. Empty fields are ignored.
type CaregiverSearch struct {
	Category model.Category
	City     string
}

// CaregiverRepository reads and bulk-updates caregiver profiles.
type CaregiverRepository interface {
	Search(ctx context.Context, filter CaregiverSearch) ([]model.CaregiverListing, error)
	FindByID(ctx context.Context, id uint) (*model.Caregiver, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ApplyCommission(ctx context.Context) (int64, error)
}

type caregiverRepository struct {
	db *gorm.DB
}

// NewCaregiverRepository builds a GORM-backed caregiver repository.
func NewCaregiverRepository(db *gorm.DB) CaregiverRepository {
	return &caregiverRepository{db: db}
}

// Search matches the category exactly and the city case-insensitively as a substring.
func (r *caregiverRepository) Search(ctx context.Context, filter CaregiverSearch) ([]model.CaregiverListing, error) {
	q := r.db.WithContext(ctx).
		Table("caregivers").
		Select(`caregivers.caregiver_user_id, users.given_name, users.surname, users.email, users.city,
			users.phone_number, users.profile_description, caregivers.photo, caregivers.gender,
			caregivers.caregiving_type, caregivers.hourly_rate`).
		Joins("JOIN users ON users.user_id = caregivers.caregiver_user_id")

	if filter.Category != "" {
		q = q.Where("caregivers.caregiving_type = ?", filter.Category)
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		q = q.Where("LOWER(users.city) LIKE ? ESCAPE '!'", containsPattern(strings.ToLower(city)))
	}

	var rows []model.CaregiverListing
	if err := q.Order("caregivers.caregiver_user_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *caregiverRepository) FindByID(ctx context.Context, id uint) (*model.Caregiver, error) {
	var caregiver model.Caregiver
	if err := r.db.WithContext(ctx).First(&caregiver, id).Error; err != nil {
		return nil, err
	}
	return &caregiver, nil
}

func (r *caregiverRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Caregiver{}).Where("caregiver_user_id = ?", id).Count(&n).Error
	return n > 0, err
}

// ApplyCommission raises every rate in a single statement: rates under 10 gain a flat 0.3,
// the rest grow by ten percent. Each row is compared against its own pre-update rate.
func (r *caregiverRepository) ApplyCommission(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`UPDATE caregivers SET hourly_rate = CASE
		WHEN hourly_rate < 10 THEN ROUND(hourly_rate + 0.3, 2)
		ELSE ROUND(hourly_rate * 1.10, 2)
	END`)
	return res.RowsAffected, res.Error
}
