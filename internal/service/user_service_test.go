package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"carehub/internal/db/dbtest"
	"carehub/internal/errors"
	"carehub/internal/events"
	"carehub/internal/logger"
	"carehub/internal/model"
	"carehub/internal/repository"
)

func newUserService(t *testing.T) (UserService, *gorm.DB, *MockPublisher) {
	t.Helper()
	gormDB := dbtest.Seeded(t)
	publisher := new(MockPublisher)
	svc := NewUserService(
		repository.NewUserRepository(gormDB),
		repository.NewJobRepository(gormDB),
		repository.NewMemberRepository(gormDB),
		publisher,
		logger.Discard(),
	)
	return svc, gormDB, publisher
}

func countWhere(t *testing.T, gormDB *gorm.DB, value interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gormDB.Model(value).Where(query, args...).Count(&n).Error)
	return n
}

func TestUserService_DeleteUserLeavesNoOrphans(t *testing.T) {
	tests := []struct {
		name string
		id   uint
	}{
		{"member with jobs and appointments", 11},
		{"caregiver with applications and appointments", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, gormDB, publisher := newUserService(t)
			publisher.On("Publish", mock.Anything, eventOfType(events.TypeUserDeleted)).Return(nil)

			require.NoError(t, svc.DeleteUser(context.Background(), tt.id))

			assert.Zero(t, countWhere(t, gormDB, &model.Caregiver{}, "caregiver_user_id = ?", tt.id))
			assert.Zero(t, countWhere(t, gormDB, &model.Member{}, "member_user_id = ?", tt.id))
			assert.Zero(t, countWhere(t, gormDB, &model.Address{}, "member_user_id = ?", tt.id))
			assert.Zero(t, countWhere(t, gormDB, &model.Job{}, "member_user_id = ?", tt.id))
			assert.Zero(t, countWhere(t, gormDB, &model.JobApplication{}, "caregiver_user_id = ?", tt.id))
			assert.Zero(t, countWhere(t, gormDB, &model.Appointment{}, "caregiver_user_id = ? OR member_user_id = ?", tt.id, tt.id))
			publisher.AssertExpectations(t)
		})
	}
}

func TestUserService_DeleteUnknownUser(t *testing.T) {
	svc, _, publisher := newUserService(t)

	err := svc.DeleteUser(context.Background(), 404)
	assert.Equal(t, errors.ErrUserNotFound, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUserService_Profile(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Profile(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, user.Caregiver)
	assert.Equal(t, model.CategoryElderlyCare, user.Caregiver.CaregivingType)

	_, err = svc.Profile(ctx, 404)
	assert.Equal(t, errors.ErrUserNotFound, err)
}

func TestUserService_Maintenance(t *testing.T) {
	svc, gormDB, _ := newUserService(t)
	ctx := context.Background()

	n, err := svc.UpdatePhone(ctx, "Arman", "Armanov", "+77773414141")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = svc.UpdatePhone(ctx, "No", "One", "1")
	assert.Equal(t, errors.ErrUserNotFound, err)

	n, err = svc.DeleteJobsByMemberName(ctx, "Kevin", "King")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Zero(t, countWhere(t, gormDB, &model.JobApplication{}, "job_id IN ?", []uint{1, 10}))

	n, err = svc.DeleteMembersOnStreet(ctx, "Kabanbay Batyr")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 20)
	assert.EqualValues(t, 1, users[0].UserID)
}
