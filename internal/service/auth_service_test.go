package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"carehub/internal/auth"
	"carehub/internal/db/dbtest"
	"carehub/internal/errors"
	"carehub/internal/events"
	"carehub/internal/logger"
	"carehub/internal/model"
	"carehub/internal/repository"
)

type authFixture struct {
	db        *gorm.DB
	repo      repository.UserRepository
	jwt       *auth.JWTService
	tokens    *MockTokenStore
	photos    *MockPhotoStore
	publisher *MockPublisher
	service   AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gormDB := dbtest.Seeded(t)
	f := &authFixture{
		db:        gormDB,
		repo:      repository.NewUserRepository(gormDB),
		jwt:       auth.NewJWTService("test-secret"),
		tokens:    new(MockTokenStore),
		photos:    new(MockPhotoStore),
		publisher: new(MockPublisher),
	}
	f.service = NewAuthService(f.repo, f.jwt, f.tokens, f.photos, f.publisher, logger.Discard())
	return f
}

func TestAuthService_AuthenticateHardensLegacyPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	identity, err := f.service.Authenticate(ctx, "alice@mail.com", "pass1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, identity.UserID)
	assert.Equal(t, "Alice", identity.FirstName)
	assert.Equal(t, "Smith", identity.LastName)

	user, err := f.repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, "pass1", user.Password)
	assert.Equal(t, model.CredentialBcrypt, user.PasswordScheme)
	assert.True(t, auth.VerifyPassword(model.CredentialBcrypt, user.Password, "pass1"))

	// The second login goes through the hashed path.
	again, err := f.service.Authenticate(ctx, "alice@mail.com", "pass1")
	require.NoError(t, err)
	assert.Equal(t, identity.IdentityID, again.IdentityID)

	after, err := f.repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, user.Password, after.Password)
}

func TestAuthService_AuthenticateFailuresAreUndifferentiated(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@mail.com", "pass1"},
		{"wrong password", "bob@mail.com", "pass1"},
		{"email match is case-sensitive", "BOB@mail.com", "pass2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := f.service.Authenticate(ctx, tt.email, tt.password)
			assert.Nil(t, identity)
			assert.Equal(t, errors.ErrInvalidCredentials, err)
		})
	}

	bob, err := f.repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "pass2", bob.Password)
	assert.Equal(t, model.CredentialPlain, bob.PasswordScheme)

	_, err = f.repo.FindIdentityByEmail(ctx, "bob@mail.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuthService_AuthenticateResyncsStaleIdentity(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repo.SaveIdentity(ctx, &model.Identity{
		UserID: 3, Email: "charlie@mail.com", FirstName: "Old", LastName: "Name", PasswordHash: "not-a-hash",
	}))

	identity, err := f.service.Authenticate(ctx, "charlie@mail.com", "pass3")
	require.NoError(t, err)
	assert.Equal(t, "Charlie", identity.FirstName)
	assert.True(t, auth.VerifyPassword(model.CredentialBcrypt, identity.PasswordHash, "pass3"))
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	f.tokens.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"),
		auth.Principal{UserID: 11, Email: "kevin@mail.com", Role: model.RoleMember}, auth.RefreshTokenExpiry).Return(nil)

	accessToken, refreshToken, user, err := f.service.Login(context.Background(), "kevin@mail.com", "pass11")
	require.NoError(t, err)
	require.NotNil(t, user.Member)
	assert.Equal(t, "Kevin", user.GivenName)

	claims, err := f.jwt.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, claims.Role)

	_, err = f.jwt.ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	f.tokens.AssertExpectations(t)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)

	accessToken, refreshToken, user, err := f.service.Login(context.Background(), "kevin@mail.com", "wrong")
	assert.Equal(t, errors.ErrInvalidCredentials, err)
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
	assert.Nil(t, user)
	f.tokens.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_RefreshToken(t *testing.T) {
	principal := auth.Principal{UserID: 4, Email: "diana@mail.com", Role: model.RoleCaregiver}

	tests := []struct {
		name          string
		token         func(f *authFixture) string
		setupMock     func(m *MockTokenStore)
		expectedError error
	}{
		{
			name: "stored session",
			token: func(f *authFixture) string {
				_, token, _ := f.jwt.GenerateRefreshToken(principal)
				return token
			},
			setupMock: func(m *MockTokenStore) {
				m.On("GetRefreshToken", mock.Anything, mock.Anything).Return(principal, nil)
			},
		},
		{
			name: "revoked session",
			token: func(f *authFixture) string {
				_, token, _ := f.jwt.GenerateRefreshToken(principal)
				return token
			},
			setupMock: func(m *MockTokenStore) {
				m.On("GetRefreshToken", mock.Anything, mock.Anything).Return(auth.Principal{}, auth.ErrSessionNotFound)
			},
			expectedError: errors.ErrInvalidRefreshToken,
		},
		{
			name: "session of another user",
			token: func(f *authFixture) string {
				_, token, _ := f.jwt.GenerateRefreshToken(principal)
				return token
			},
			setupMock: func(m *MockTokenStore) {
				m.On("GetRefreshToken", mock.Anything, mock.Anything).Return(auth.Principal{UserID: 5, Email: "evan@mail.com"}, nil)
			},
			expectedError: errors.ErrInvalidRefreshToken,
		},
		{
			name: "access token presented",
			token: func(f *authFixture) string {
				token, _ := f.jwt.GenerateAccessToken(principal)
				return token
			},
			setupMock:     func(m *MockTokenStore) {},
			expectedError: errors.ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tt.setupMock(f.tokens)

			accessToken, err := f.service.RefreshToken(context.Background(), tt.token(f))

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
			} else {
				require.NoError(t, err)
				claims, err := f.jwt.ValidateAccessToken(accessToken)
				require.NoError(t, err)
				assert.Equal(t, principal, claims.Principal())
			}
			f.tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	tokenID, token, err := f.jwt.GenerateRefreshToken(auth.Principal{UserID: 1, Email: "alice@mail.com"})
	require.NoError(t, err)
	f.tokens.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	require.NoError(t, f.service.Logout(context.Background(), token))
	assert.Equal(t, errors.ErrInvalidRefreshToken, f.service.Logout(context.Background(), "garbage"))
	f.tokens.AssertExpectations(t)
}

func caregiverRegistration(email string) CaregiverRegistration {
	gender := model.GenderFemale
	return CaregiverRegistration{
		Registration: Registration{
			Email:           email,
			GivenName:       "Zhanna",
			Surname:         "Nur",
			City:            "Astana",
			Password:        "secret1",
			ConfirmPassword: "secret1",
		},
		Gender:         &gender,
		CaregivingType: model.CategoryElderlyCare,
		HourlyRate:     decimal.NewNullDecimal(decimal.RequireFromString("12.50")),
	}
}

func TestAuthService_RegisterCaregiver(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.photos.On("Save", mock.Anything, "me.png", mock.Anything).Return("caregivers/abc.png", nil)
	f.publisher.On("Publish", mock.Anything, eventOfType(events.TypeUserRegistered)).Return(nil)

	req := caregiverRegistration("zhanna@mail.com")
	req.Photo = &PhotoUpload{Filename: "me.png", Content: strings.NewReader("png")}

	user, err := f.service.RegisterCaregiver(ctx, req)
	require.NoError(t, err)
	assert.EqualValues(t, 21, user.UserID)
	assert.Equal(t, model.CredentialBcrypt, user.PasswordScheme)

	profile, err := f.repo.FindProfile(ctx, user.UserID)
	require.NoError(t, err)
	require.NotNil(t, profile.Caregiver)
	assert.Equal(t, "caregivers/abc.png", *profile.Caregiver.Photo)
	assert.True(t, profile.Caregiver.HourlyRate.Decimal.Equal(decimal.RequireFromString("12.5")))

	identity, err := f.repo.FindIdentityByEmail(ctx, "zhanna@mail.com")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, identity.UserID)

	// A freshly registered user logs in through the hashed path.
	_, err = f.service.Authenticate(ctx, "zhanna@mail.com", "secret1")
	require.NoError(t, err)

	f.photos.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestAuthService_RegisterCaregiverRejected(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(r *CaregiverRegistration)
		expectedError error
	}{
		{"password mismatch", func(r *CaregiverRegistration) { r.ConfirmPassword = "other" }, errors.ErrPasswordMismatch},
		{"email taken", func(r *CaregiverRegistration) { r.Email = "alice@mail.com" }, errors.ErrEmailTaken},
		{"unknown category", func(r *CaregiverRegistration) { r.CaregivingType = "Gardener" }, errors.ErrConstraint},
		{"negative rate", func(r *CaregiverRegistration) {
			r.HourlyRate = decimal.NewNullDecimal(decimal.NewFromInt(-1))
		}, errors.ErrConstraint},
		{"unknown gender", func(r *CaregiverRegistration) {
			g := model.Gender("X")
			r.Gender = &g
		}, errors.ErrConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			req := caregiverRegistration("new@mail.com")
			tt.mutate(&req)

			user, err := f.service.RegisterCaregiver(context.Background(), req)
			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, user)

			var n int64
			require.NoError(t, f.db.Model(&model.User{}).Count(&n).Error)
			assert.EqualValues(t, 20, n)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_RegisterCaregiverRejectedRemovesPhoto(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.photos.On("Save", mock.Anything, "me.png", mock.Anything).Return("caregivers/abc.png", nil)
	f.photos.On("Delete", mock.Anything, "caregivers/abc.png").Return(nil)

	req := caregiverRegistration("alice@mail.com")
	req.Photo = &PhotoUpload{Filename: "me.png", Content: strings.NewReader("png")}

	user, err := f.service.RegisterCaregiver(ctx, req)
	assert.ErrorIs(t, err, errors.ErrEmailTaken)
	assert.Nil(t, user)

	f.photos.AssertExpectations(t)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAuthService_RegisterMember(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.publisher.On("Publish", mock.Anything, eventOfType(events.TypeUserRegistered)).Return(nil)

	street := "Abay"
	user, err := f.service.RegisterMember(ctx, MemberRegistration{
		Registration: Registration{
			Email: "dana@mail.com", GivenName: "Dana", Surname: "Bek", City: "Almaty",
			Password: "secret1", ConfirmPassword: "secret1",
		},
		Street: &street,
	})
	require.NoError(t, err)

	profile, err := f.repo.FindProfile(ctx, user.UserID)
	require.NoError(t, err)
	require.NotNil(t, profile.Member)
	require.NotNil(t, profile.Member.Address)
	assert.Equal(t, "Abay", *profile.Member.Address.Street)
	f.publisher.AssertExpectations(t)
}
