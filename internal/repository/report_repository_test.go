package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carehub/internal/db/dbtest"
	"carehub/internal/model"
)

func TestReportRepository_ApplicantCounts(t *testing.T) {
	repo := NewReportRepository(dbtest.Seeded(t))

	rows, err := repo.ApplicantCounts(context.Background())
	require.NoError(t, err)

	got := make(map[uint]int64, len(rows))
	order := make([]uint, 0, len(rows))
	for _, row := range rows {
		got[row.JobID] = row.ApplicantCount
		order = append(order, row.JobID)
	}
	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, order)
	assert.Equal(t, map[uint]int64{1: 2, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 7: 1, 8: 0, 9: 1, 10: 1}, got)
}

func TestReportRepository_AcceptedTotals(t *testing.T) {
	repo := NewReportRepository(dbtest.Seeded(t))
	ctx := context.Background()

	hours, err := repo.TotalAcceptedHours(ctx)
	require.NoError(t, err)
	assert.True(t, hours.Valid)
	assert.EqualValues(t, 27, hours.Int64)

	cost, err := repo.TotalAcceptedCost(ctx)
	require.NoError(t, err)
	assert.True(t, cost.Valid)
	assert.True(t, cost.Decimal.Equal(decimal.RequireFromString("381.5")), "got %s", cost.Decimal)

	avg, err := repo.AverageAcceptedPay(ctx)
	require.NoError(t, err)
	assert.True(t, avg.Valid)
	assert.InDelta(t, 89.5/7, avg.Decimal.InexactFloat64(), 1e-6)
}

func TestReportRepository_AcceptedTotalsWithoutAcceptedAppointments(t *testing.T) {
	gormDB := dbtest.Seeded(t)
	require.NoError(t, gormDB.Model(&model.Appointment{}).
		Where("status = ?", model.AppointmentStatusAccepted).
		Update("status", model.AppointmentStatusDeclined).Error)
	repo := NewReportRepository(gormDB)
	ctx := context.Background()

	hours, err := repo.TotalAcceptedHours(ctx)
	require.NoError(t, err)
	assert.False(t, hours.Valid)

	avg, err := repo.AverageAcceptedPay(ctx)
	require.NoError(t, err)
	assert.False(t, avg.Valid)

	above, err := repo.AboveAverageCaregivers(ctx)
	require.NoError(t, err)
	assert.Empty(t, above)
}

func TestReportRepository_AboveAverageCaregivers(t *testing.T) {
	repo := NewReportRepository(dbtest.Seeded(t))

	rows, err := repo.AboveAverageCaregivers(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	want := []struct {
		name string
		rate int64
	}{{"Alice", 15}, {"Hannah", 18}, {"Julia", 13}}
	for i, w := range want {
		assert.Equal(t, w.name, rows[i].GivenName)
		assert.True(t, rows[i].HourlyRate.Equal(decimal.NewFromInt(w.rate)))
	}
}

func TestReportRepository_AcceptedAppointmentNames(t *testing.T) {
	repo := NewReportRepository(dbtest.Seeded(t))

	rows, err := repo.AcceptedAppointmentNames(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, model.AppointmentParties{CaregiverName: "Alice Smith", MemberName: "Laura Lee"}, rows[0])
	assert.Equal(t, model.AppointmentParties{CaregiverName: "Alice Smith", MemberName: "Nina Nelson"}, rows[6])
}

func TestReportRepository_JobsWithRequirement(t *testing.T) {
	repo := NewReportRepository(dbtest.Seeded(t))

	rows, err := repo.JobsWithRequirement(context.Background(), "SOFT-SPOKEN")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 3, rows[0].JobID)
}

func TestReportRepository_WorkHoursByCategory(t *testing.T) {
	repo := NewReportRepository(dbtest.Seeded(t))

	rows, err := repo.WorkHoursByCategory(context.Background(), model.CategoryBabysitter)
	require.NoError(t, err)

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.AppointmentID)
	}
	assert.Equal(t, []uint{1, 3, 6, 8, 10}, ids)
	require.NotNil(t, rows[0].WorkHours)
	assert.Equal(t, 4, *rows[0].WorkHours)
}

func TestReportRepository_MembersSeeking(t *testing.T) {
	repo := NewReportRepository(dbtest.Seeded(t))

	rows, err := repo.MembersSeeking(context.Background(), "Astana", "no pets", model.CategoryElderlyCare)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 11, rows[0].MemberUserID)
	assert.Equal(t, "Kevin", rows[0].GivenName)
}

func TestReportRepository_JobApplicationsView(t *testing.T) {
	repo := NewReportRepository(dbtest.Seeded(t))

	rows, err := repo.JobApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.EqualValues(t, 1, rows[0].JobID)
	assert.Equal(t, "Kevin", rows[0].Employer)
	assert.Equal(t, "Bob", rows[0].ApplicantName)
	assert.Equal(t, "Evan", rows[1].ApplicantName)
}
