package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"carehub/internal/errors"
	"carehub/internal/events"
	"carehub/internal/logger"
	"carehub/internal/model"
	"carehub/internal/repository"
)

// UserService exposes account-level operations, including the admin maintenance queries.
type UserService interface {
	Profile(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	// DeleteUser removes the user and every row that depends on it.
	DeleteUser(ctx context.Context, id uint) error
	UpdatePhone(ctx context.Context, givenName, surname, phone string) (int64, error)
	DeleteJobsByMemberName(ctx context.Context, givenName, surname string) (int64, error)
	DeleteMembersOnStreet(ctx context.Context, street string) (int64, error)
}

type userService struct {
	repo       repository.UserRepository
	jobRepo    repository.JobRepository
	memberRepo repository.MemberRepository
	publisher  events.Publisher
	log        logger.Logger
}

// NewUserService builds a UserService.
func NewUserService(
	repo repository.UserRepository,
	jobRepo repository.JobRepository,
	memberRepo repository.MemberRepository,
	publisher events.Publisher,
	log logger.Logger,
) UserService {
	return &userService{
		repo:       repo,
		jobRepo:    jobRepo,
		memberRepo: memberRepo,
		publisher:  publisher,
		log:        log.With("component", "users"),
	}
}

func (s *userService) Profile(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info("user deleted", "user_id", id)
	publish(ctx, s.publisher, s.log, events.TypeUserDeleted, events.UserDeleted{UserID: id})
	return nil
}

func (s *userService) UpdatePhone(ctx context.Context, givenName, surname, phone string) (int64, error) {
	n, err := s.repo.UpdatePhoneByName(ctx, givenName, surname, phone)
	if err != nil {
		return 0, fmt.Errorf("update phone: %w", err)
	}
	if n == 0 {
		return 0, errors.ErrUserNotFound
	}
	return n, nil
}

func (s *userService) DeleteJobsByMemberName(ctx context.Context, givenName, surname string) (int64, error) {
	n, err := s.jobRepo.DeleteByMemberName(ctx, givenName, surname)
	if err != nil {
		return 0, fmt.Errorf("delete jobs: %w", err)
	}
	s.log.Info("jobs deleted", "given_name", givenName, "surname", surname, "count", n)
	return n, nil
}

func (s *userService) DeleteMembersOnStreet(ctx context.Context, street string) (int64, error) {
	n, err := s.memberRepo.DeleteOnStreet(ctx, street)
	if err != nil {
		return 0, fmt.Errorf("delete members: %w", err)
	}
	s.log.Info("members deleted", "street", street, "count", n)
	return n, nil
}
