package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"carehub/internal/auth"
	"carehub/internal/errors"
	"carehub/internal/events"
	"carehub/internal/logger"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/internal/storage"
)

// Registration holds the account fields shared by both registration variants.
type Registration struct {
	Email              string
	GivenName          string
	Surname            string
	City               string
	PhoneNumber        *string
	ProfileDescription *string
	Password           string
	ConfirmPassword    string
}

// PhotoUpload is an uploaded caregiver photo.
type PhotoUpload struct {
	Filename string
	Content  io.Reader
}

// CaregiverRegistration registers a user with a caregiver profile.
type CaregiverRegistration struct {
	Registration
	Gender         *model.Gender
	CaregivingType model.Category
	HourlyRate     decimal.NullDecimal
	Photo          *PhotoUpload
}

// MemberRegistration registers a user with a member profile and address.
type MemberRegistration struct {
	Registration
	HouseRules           *string
	DependentDescription *string
	HouseNumber          *string
	Street               *string
	Town                 *string
}

// AuthService handles authentication and registration.
type AuthService interface {
	// Authenticate checks a password against the user table, hardens a legacy plain credential
	// and brings the session identity up to date.
	Authenticate(ctx context.Context, email, password string) (*model.Identity, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	RegisterCaregiver(ctx context.Context, req CaregiverRegistration) (*model.User, error)
	RegisterMember(ctx context.Context, req MemberRegistration) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	photos     storage.PhotoStore
	publisher  events.Publisher
	log        logger.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	photos storage.PhotoStore,
	publisher events.Publisher,
	log logger.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		photos:     photos,
		publisher:  publisher,
		log:        log.With("component", "auth"),
	}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordScheme, user.Password, password) {
		return nil, errors.ErrInvalidCredentials
	}

	var identity *model.Identity
	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
		var hashed string
		hash := func() (string, error) {
			if hashed != "" {
				return hashed, nil
			}
			h, err := auth.HashPassword(password)
			if err != nil {
				return "", fmt.Errorf("hash password: %w", err)
			}
			hashed = h
			return hashed, nil
		}

		found, err := tx.FindIdentityByEmail(ctx, user.Email)
		switch {
		case err == nil:
			identity = found
		case errors.Is(err, gorm.ErrRecordNotFound):
			identity = &model.Identity{Email: user.Email}
		default:
			return fmt.Errorf("find identity: %w", err)
		}

		if identity.IdentityID == 0 || !auth.VerifyPassword(model.CredentialBcrypt, identity.PasswordHash, password) {
			h, err := hash()
			if err != nil {
				return err
			}
			identity.PasswordHash = h
		}
		identity.UserID = user.UserID
		identity.FirstName = user.GivenName
		identity.LastName = user.Surname
		identity.SyncedAt = time.Now().UTC()
		if err := tx.SaveIdentity(ctx, identity); err != nil {
			return fmt.Errorf("save identity: %w", err)
		}

		if user.PasswordScheme == model.CredentialPlain {
			h, err := hash()
			if err != nil {
				return err
			}
			if err := tx.HardenPassword(ctx, user.UserID, h); err != nil {
				return fmt.Errorf("harden password: %w", err)
			}
			s.log.Info("legacy credential hardened", "user_id", user.UserID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return identity, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error) {
	identity, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidCredentials) {
			s.log.BusinessError("login rejected", err, "email", email)
		}
		return "", "", nil, err
	}

	role, err := s.userRepo.RoleOf(ctx, identity.UserID)
	if err != nil {
		return "", "", nil, fmt.Errorf("resolve role: %w", err)
	}
	principal := auth.Principal{UserID: identity.UserID, Email: identity.Email, Role: role}

	accessToken, err = s.jwtService.GenerateAccessToken(principal)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(principal)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, principal, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	user, err = s.userRepo.FindProfile(ctx, identity.UserID)
	if err != nil {
		return "", "", nil, fmt.Errorf("load profile: %w", err)
	}
	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", errors.ErrInvalidRefreshToken
	}

	stored, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}
	if stored.UserID != claims.UserID || stored.Email != claims.Email {
		return "", errors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(stored)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

func (s *authService) RegisterCaregiver(ctx context.Context, req CaregiverRegistration) (*model.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, errors.ErrPasswordMismatch
	}
	if err := validateCategory(req.CaregivingType); err != nil {
		return nil, err
	}
	if err := validateGender(req.Gender); err != nil {
		return nil, err
	}
	if err := validateRate(req.HourlyRate); err != nil {
		return nil, err
	}

	caregiver := &model.Caregiver{
		Gender:         req.Gender,
		CaregivingType: req.CaregivingType,
		HourlyRate:     req.HourlyRate,
	}
	if req.Photo != nil {
		ref, err := s.photos.Save(ctx, req.Photo.Filename, req.Photo.Content)
		if err != nil {
			return nil, fmt.Errorf("save photo: %w", err)
		}
		caregiver.Photo = &ref
	}

	user, err := s.register(ctx, req.Registration, func(ctx context.Context, tx repository.UserRepository, user *model.User) error {
		caregiver.CaregiverUserID = user.UserID
		return tx.CreateCaregiver(ctx, caregiver)
	})
	if err != nil {
		if caregiver.Photo != nil {
			if delErr := s.photos.Delete(ctx, *caregiver.Photo); delErr != nil {
				s.log.InternalError("remove photo of rejected registration", delErr, "photo", *caregiver.Photo)
			}
		}
		return nil, err
	}
	user.Caregiver = caregiver

	publish(ctx, s.publisher, s.log, events.TypeUserRegistered, events.UserRegistered{
		UserID: user.UserID, Email: user.Email, Role: string(model.RoleCaregiver),
	})
	return user, nil
}

func (s *authService) RegisterMember(ctx context.Context, req MemberRegistration) (*model.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, errors.ErrPasswordMismatch
	}

	member := &model.Member{
		HouseRules:           req.HouseRules,
		DependentDescription: req.DependentDescription,
	}
	address := &model.Address{
		HouseNumber: req.HouseNumber,
		Street:      req.Street,
		Town:        req.Town,
	}

	user, err := s.register(ctx, req.Registration, func(ctx context.Context, tx repository.UserRepository, user *model.User) error {
		member.MemberUserID = user.UserID
		return tx.CreateMember(ctx, member, address)
	})
	if err != nil {
		return nil, err
	}
	member.Address = address
	user.Member = member

	publish(ctx, s.publisher, s.log, events.TypeUserRegistered, events.UserRegistered{
		UserID: user.UserID, Email: user.Email, Role: string(model.RoleMember),
	})
	return user, nil
}

// register writes the user, its profile and its identity in one transaction.
func (s *authService) register(
	ctx context.Context,
	req Registration,
	createProfile func(ctx context.Context, tx repository.UserRepository, user *model.User) error,
) (*model.User, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:              req.Email,
		GivenName:          req.GivenName,
		Surname:            req.Surname,
		City:               req.City,
		PhoneNumber:        req.PhoneNumber,
		ProfileDescription: req.ProfileDescription,
		Password:           hashed,
		PasswordScheme:     model.CredentialBcrypt,
	}

	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
		if _, err := tx.FindByEmail(ctx, req.Email); err == nil {
			return errors.ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		if err := tx.ResyncIDSequence(ctx); err != nil {
			return fmt.Errorf("resync user ids: %w", err)
		}
		if err := tx.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := createProfile(ctx, tx, user); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return tx.SaveIdentity(ctx, &model.Identity{
			UserID:       user.UserID,
			Email:        user.Email,
			FirstName:    user.GivenName,
			LastName:     user.Surname,
			PasswordHash: hashed,
			SyncedAt:     time.Now().UTC(),
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, errors.ErrEmailTaken
		case errors.Is(err, gorm.ErrCheckConstraintViolated):
			return nil, fmt.Errorf("%w: %v", errors.ErrConstraint, err)
		}
		return nil, err
	}
	return user, nil
}
