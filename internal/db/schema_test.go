package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"carehub/internal/db"
	"carehub/internal/db/dbtest"
	"carehub/internal/model"
)

func count(t *testing.T, gormDB *gorm.DB, table, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := gormDB.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func TestSeed_LoadsDemoData(t *testing.T) {
	gormDB := dbtest.Open(t)

	summary, err := db.Seed(context.Background(), gormDB)
	require.NoError(t, err)

	assert.Equal(t, 20, summary.Users)
	assert.Equal(t, int64(20), count(t, gormDB, "users", ""))
	assert.Equal(t, int64(10), count(t, gormDB, "caregivers", ""))
	assert.Equal(t, int64(10), count(t, gormDB, "members", ""))
	assert.Equal(t, int64(10), count(t, gormDB, "addresses", ""))
	assert.Equal(t, int64(10), count(t, gormDB, "jobs", ""))
	assert.Equal(t, int64(10), count(t, gormDB, "job_applications", ""))
	assert.Equal(t, int64(10), count(t, gormDB, "appointments", ""))
	assert.Equal(t, int64(20), count(t, gormDB, "users", "password_scheme = ?", model.CredentialPlain))
}

func TestSeed_IsRepeatable(t *testing.T) {
	gormDB := dbtest.Seeded(t)

	_, err := db.Seed(context.Background(), gormDB)
	require.NoError(t, err)

	assert.Equal(t, int64(20), count(t, gormDB, "users", ""))
	assert.Equal(t, int64(10), count(t, gormDB, "job_applications", ""))
}

func TestCreateSchema_DropsPreviousData(t *testing.T) {
	gormDB := dbtest.Seeded(t)

	require.NoError(t, db.CreateSchema(context.Background(), gormDB))

	assert.Zero(t, count(t, gormDB, "users", ""))
	assert.Zero(t, count(t, gormDB, "jobs", ""))
	assert.Zero(t, count(t, gormDB, "view_job_applications", ""))
}

func TestDeleteUser_CascadesMemberSubtree(t *testing.T) {
	gormDB := dbtest.Seeded(t)

	// Amina (19) posted jobs 5 and 6, has an address and an accepted appointment with caregiver 4.
	require.NoError(t, gormDB.Delete(&model.User{}, 19).Error)

	assert.Zero(t, count(t, gormDB, "members", "member_user_id = ?", 19))
	assert.Zero(t, count(t, gormDB, "addresses", "member_user_id = ?", 19))
	assert.Zero(t, count(t, gormDB, "jobs", "member_user_id = ?", 19))
	assert.Zero(t, count(t, gormDB, "job_applications", "job_id IN ?", []uint{5, 6}))
	assert.Zero(t, count(t, gormDB, "appointments", "member_user_id = ?", 19))
	assert.Equal(t, int64(8), count(t, gormDB, "jobs", ""))
	assert.Equal(t, int64(8), count(t, gormDB, "job_applications", ""))
}

func TestDeleteUser_CascadesCaregiverSubtree(t *testing.T) {
	gormDB := dbtest.Seeded(t)

	require.NoError(t, gormDB.Delete(&model.User{}, 1).Error)

	assert.Zero(t, count(t, gormDB, "caregivers", "caregiver_user_id = ?", 1))
	assert.Zero(t, count(t, gormDB, "job_applications", "caregiver_user_id = ?", 1))
	assert.Zero(t, count(t, gormDB, "appointments", "caregiver_user_id = ?", 1))
	assert.Equal(t, int64(10), count(t, gormDB, "jobs", ""))
}

func TestSchema_RejectsOutOfDomainValues(t *testing.T) {
	gormDB := dbtest.Seeded(t)

	err := gormDB.Exec("UPDATE appointments SET status = 'Maybe' WHERE appointment_id = 1").Error
	assert.Error(t, err)

	err = gormDB.Exec("UPDATE caregivers SET hourly_rate = -1 WHERE caregiver_user_id = 1").Error
	assert.Error(t, err)

	err = gormDB.Exec("UPDATE jobs SET required_caregiving_type = 'Gardener' WHERE job_id = 1").Error
	assert.Error(t, err)
}

func TestResyncSequence_NextIDFollowsSeed(t *testing.T) {
	gormDB := dbtest.Seeded(t)

	require.NoError(t, db.ResyncSequence(gormDB, "users", "user_id"))

	user := model.User{Email: "new@mail.com", GivenName: "New", Surname: "Comer", City: "Astana", Password: "x"}
	require.NoError(t, gormDB.Create(&user).Error)
	assert.Equal(t, uint(21), user.UserID)
}
