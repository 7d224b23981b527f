package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"carehub/internal/auth"
	"carehub/internal/db/dbtest"
	"carehub/internal/errors"
	"carehub/internal/events"
	"carehub/internal/logger"
	"carehub/internal/model"
	"carehub/internal/repository"
)

func newAppointmentService(t *testing.T) (AppointmentService, *MockPublisher) {
	t.Helper()
	gormDB := dbtest.Seeded(t)
	publisher := new(MockPublisher)
	svc := NewAppointmentService(
		repository.NewAppointmentRepository(gormDB),
		repository.NewCaregiverRepository(gormDB),
		repository.NewMemberRepository(gormDB),
		publisher,
		logger.Discard(),
	)
	return svc, publisher
}

func TestAppointmentService_Create(t *testing.T) {
	svc, _ := newAppointmentService(t)
	ctx := context.Background()
	hours := 3

	appointment, err := svc.Create(ctx, memberAmina, NewAppointment{
		CaregiverUserID: 4,
		Date:            model.NewDate(2025, time.December, 2),
		Time:            datatypes.NewTime(10, 30, 0, 0),
		WorkHours:       &hours,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 11, appointment.AppointmentID)
	assert.Equal(t, model.AppointmentStatusPending, appointment.Status)
}

func TestAppointmentService_CreateRejected(t *testing.T) {
	svc, _ := newAppointmentService(t)
	ctx := context.Background()
	negative := -1

	_, err := svc.Create(ctx, caregiverAlice, NewAppointment{CaregiverUserID: 4})
	assert.Equal(t, errors.ErrMemberRequired, err)

	_, err = svc.Create(ctx, memberAmina, NewAppointment{CaregiverUserID: 15})
	assert.Equal(t, errors.ErrCaregiverNotFound, err)

	_, err = svc.Create(ctx, memberAmina, NewAppointment{CaregiverUserID: 4, WorkHours: &negative})
	assert.ErrorIs(t, err, errors.ErrConstraint)
}

func TestAppointmentService_UpdateStatus(t *testing.T) {
	svc, publisher := newAppointmentService(t)
	ctx := context.Background()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		payload, ok := e.Payload.(events.AppointmentStatusChanged)
		return ok && payload.AppointmentID == 3 && payload.From == "Pending" && payload.To == "Accepted"
	})).Return(nil).Once()

	// Appointment 3 is Charlie (3) with Mike (13).
	charlie := auth.Principal{UserID: 3, Role: model.RoleCaregiver}
	appointment, err := svc.UpdateStatus(ctx, charlie, 3, model.AppointmentStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusAccepted, appointment.Status)

	_, err = svc.UpdateStatus(ctx, charlie, 3, model.AppointmentStatusAccepted)
	require.NoError(t, err)

	publisher.AssertExpectations(t)
}

func TestAppointmentService_UpdateStatusRejected(t *testing.T) {
	svc, _ := newAppointmentService(t)
	ctx := context.Background()
	charlie := auth.Principal{UserID: 3, Role: model.RoleCaregiver}

	_, err := svc.UpdateStatus(ctx, charlie, 3, "Maybe")
	assert.ErrorIs(t, err, errors.ErrConstraint)

	_, err = svc.UpdateStatus(ctx, caregiverAlice, 3, model.AppointmentStatusDeclined)
	assert.Equal(t, errors.ErrAppointmentNotFound, err)

	_, err = svc.UpdateStatus(ctx, charlie, 999, model.AppointmentStatusDeclined)
	assert.Equal(t, errors.ErrAppointmentNotFound, err)
}
