package service

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"carehub/internal/auth"
	"carehub/internal/errors"
	"carehub/internal/events"
	"carehub/internal/logger"
	"carehub/internal/model"
	"carehub/internal/repository"
)

// NewAppointment is a member's request to book a caregiver.
type NewAppointment struct {
	CaregiverUserID uint
	Date            datatypes.Date
	Time            datatypes.Time
	WorkHours       *int
}

// AppointmentService books appointments and moves them between statuses.
type AppointmentService interface {
	Create(ctx context.Context, principal auth.Principal, req NewAppointment) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, principal auth.Principal, id uint, status model.AppointmentStatus) (*model.Appointment, error)
}

type appointmentService struct {
	repo          repository.AppointmentRepository
	caregiverRepo repository.CaregiverRepository
	memberRepo    repository.MemberRepository
	publisher     events.Publisher
	log           logger.Logger
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(
	repo repository.AppointmentRepository,
	caregiverRepo repository.CaregiverRepository,
	memberRepo repository.MemberRepository,
	publisher events.Publisher,
	log logger.Logger,
) AppointmentService {
	return &appointmentService{
		repo:          repo,
		caregiverRepo: caregiverRepo,
		memberRepo:    memberRepo,
		publisher:     publisher,
		log:           log.With("component", "appointments"),
	}
}

// Create books a pending appointment between the calling member and a caregiver.
func (s *appointmentService) Create(ctx context.Context, principal auth.Principal, req NewAppointment) (*model.Appointment, error) {
	isMember, err := s.memberRepo.Exists(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("check member: %w", err)
	}
	if !isMember {
		return nil, errors.ErrMemberRequired
	}
	if err := validateWorkHours(req.WorkHours); err != nil {
		return nil, err
	}

	isCaregiver, err := s.caregiverRepo.Exists(ctx, req.CaregiverUserID)
	if err != nil {
		return nil, fmt.Errorf("check caregiver: %w", err)
	}
	if !isCaregiver {
		return nil, errors.ErrCaregiverNotFound
	}

	appointment := &model.Appointment{
		CaregiverUserID: req.CaregiverUserID,
		MemberUserID:    principal.UserID,
		AppointmentDate: req.Date,
		AppointmentTime: req.Time,
		WorkHours:       req.WorkHours,
		Status:          model.AppointmentStatusPending,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appointment, nil
}

// UpdateStatus is limited to the two parties of the appointment; anyone else sees it as missing.
func (s *appointmentService) UpdateStatus(ctx context.Context, principal auth.Principal, id uint, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown appointment status %q", errors.ErrConstraint, status)
	}

	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if appointment.CaregiverUserID != principal.UserID && appointment.MemberUserID != principal.UserID {
		return nil, errors.ErrAppointmentNotFound
	}

	previous := appointment.Status
	if previous == status {
		return appointment, nil
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}
	appointment.Status = status

	publish(ctx, s.publisher, s.log, events.TypeAppointmentStatusChanged, events.AppointmentStatusChanged{
		AppointmentID: id, From: string(previous), To: string(status),
	})
	return appointment, nil
}
