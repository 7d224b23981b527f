package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"carehub/internal/db/dbtest"
	"carehub/internal/model"
)

func TestUserRepository_FindProfile(t *testing.T) {
	repo := NewUserRepository(dbtest.Seeded(t))
	ctx := context.Background()

	member, err := repo.FindProfile(ctx, 11)
	require.NoError(t, err)
	assert.Nil(t, member.Caregiver)
	require.NotNil(t, member.Member)
	require.NotNil(t, member.Member.Address)
	assert.Equal(t, "Mangilik El", *member.Member.Address.Street)

	caregiver, err := repo.FindProfile(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, caregiver.Caregiver)
	assert.Nil(t, caregiver.Member)
	assert.Equal(t, model.CategoryBabysitter, caregiver.Caregiver.CaregivingType)
}

func TestUserRepository_RoleOf(t *testing.T) {
	gormDB := dbtest.Seeded(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	role, err := repo.RoleOf(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCaregiver, role)

	role, err = repo.RoleOf(ctx, 15)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, role)

	bare := &model.User{Email: "bare@mail.com", GivenName: "Bare", Surname: "User", City: "Astana", Password: "x"}
	require.NoError(t, repo.Create(ctx, bare))
	role, err = repo.RoleOf(ctx, bare.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleNone, role)
}

func TestUserRepository_HardenPasswordNeverTouchesHashedRows(t *testing.T) {
	repo := NewUserRepository(dbtest.Seeded(t))
	ctx := context.Background()

	require.NoError(t, repo.HardenPassword(ctx, 1, "$2a$10$first"))
	require.NoError(t, repo.HardenPassword(ctx, 1, "$2a$10$second"))

	user, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$first", user.Password)
	assert.Equal(t, model.CredentialBcrypt, user.PasswordScheme)
}

func TestUserRepository_UpdatePhoneByName(t *testing.T) {
	repo := NewUserRepository(dbtest.Seeded(t))
	ctx := context.Background()

	n, err := repo.UpdatePhoneByName(ctx, "Arman", "Armanov", "+77773414141")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	user, err := repo.FindByEmail(ctx, "arman@mail.com")
	require.NoError(t, err)
	assert.Equal(t, "+77773414141", *user.PhoneNumber)

	n, err = repo.UpdatePhoneByName(ctx, "Nobody", "Here", "1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	gormDB := dbtest.Seeded(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, 19))

	var n int64
	require.NoError(t, gormDB.Model(&model.Job{}).Where("member_user_id = ?", 19).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, gormDB.Model(&model.JobApplication{}).Where("job_id IN ?", []uint{5, 6}).Count(&n).Error)
	assert.Zero(t, n)

	assert.ErrorIs(t, repo.Delete(ctx, 19), gorm.ErrRecordNotFound)
}

func TestUserRepository_CreateMemberInTransaction(t *testing.T) {
	repo := NewUserRepository(dbtest.Seeded(t))
	ctx := context.Background()

	var id uint
	err := repo.WithTransaction(ctx, func(ctx context.Context, tx UserRepository) error {
		require.NoError(t, tx.ResyncIDSequence(ctx))
		user := &model.User{Email: "zara@mail.com", GivenName: "Zara", Surname: "Zed", City: "Almaty", Password: "h", PasswordScheme: model.CredentialBcrypt}
		if err := tx.Create(ctx, user); err != nil {
			return err
		}
		id = user.UserID
		street := "Abay"
		return tx.CreateMember(ctx, &model.Member{MemberUserID: user.UserID}, &model.Address{Street: &street})
	})
	require.NoError(t, err)
	assert.EqualValues(t, 21, id)

	profile, err := repo.FindProfile(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, profile.Member)
	require.NotNil(t, profile.Member.Address)
	assert.Equal(t, "Abay", *profile.Member.Address.Street)
}

func TestUserRepository_IdentityRoundTrip(t *testing.T) {
	repo := NewUserRepository(dbtest.Seeded(t))
	ctx := context.Background()

	_, err := repo.FindIdentityByEmail(ctx, "alice@mail.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	identity := &model.Identity{UserID: 1, Email: "alice@mail.com", FirstName: "Alice", LastName: "Smith", PasswordHash: "h1"}
	require.NoError(t, repo.SaveIdentity(ctx, identity))
	identity.PasswordHash = "h2"
	require.NoError(t, repo.SaveIdentity(ctx, identity))

	stored, err := repo.FindIdentityByEmail(ctx, "alice@mail.com")
	require.NoError(t, err)
	assert.Equal(t, identity.IdentityID, stored.IdentityID)
	assert.Equal(t, "h2", stored.PasswordHash)
}

func TestUserRepository_SaveIdentityConvergesOnEmail(t *testing.T) {
	repo := NewUserRepository(dbtest.Seeded(t))
	ctx := context.Background()

	first := &model.Identity{UserID: 1, Email: "alice@mail.com", FirstName: "Alice", LastName: "Smith", PasswordHash: "h1"}
	require.NoError(t, repo.SaveIdentity(ctx, first))

	// A second login that also missed the row inserts a fresh identity for the same email.
	second := &model.Identity{UserID: 1, Email: "alice@mail.com", FirstName: "Alicia", LastName: "Smith", PasswordHash: "h2"}
	require.NoError(t, repo.SaveIdentity(ctx, second))
	assert.Equal(t, first.IdentityID, second.IdentityID)

	stored, err := repo.FindIdentityByEmail(ctx, "alice@mail.com")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", stored.FirstName)
	assert.Equal(t, "h2", stored.PasswordHash)
}
