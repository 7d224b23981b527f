package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"carehub/internal/db"
	"carehub/internal/model"
)

// AppointmentRepository persists appointments and their status changes.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	FindByID(ctx context.Context, id uint) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status model.AppointmentStatus) error
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository builds a GORM-backed appointment repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ResyncSequence(tx, "appointments", "appointment_id"); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(appointment).Error
	})
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uint, status model.AppointmentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("appointment_id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
