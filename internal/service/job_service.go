package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"carehub/internal/auth"
	"carehub/internal/errors"
	"carehub/internal/events"
	"carehub/internal/logger"
	"carehub/internal/model"
	"carehub/internal/repository"
)

// MemberJob is one of a member's postings with everyone who applied to it.
type MemberJob struct {
	model.JobListing
	Applicants []model.Applicant `json:"applicants"`
}

// JobService covers job postings and caregiver applications.
type JobService interface {
	ListJobs(ctx context.Context, category model.Category) ([]model.JobListing, error)
	PostJob(ctx context.Context, principal auth.Principal, category model.Category, requirements *string) (*model.Job, error)
	// ApplyToJob reports false, without an error, when the caregiver already applied.
	ApplyToJob(ctx context.Context, principal auth.Principal, jobID uint) (bool, error)
	AppliedJobIDs(ctx context.Context, principal auth.Principal) ([]uint, error)
	// ApplicantsForJobs has a key for every requested id, empty when nobody applied.
	ApplicantsForJobs(ctx context.Context, jobIDs []uint) (map[uint][]model.Applicant, error)
	MemberJobs(ctx context.Context, principal auth.Principal) ([]MemberJob, error)
}

type jobService struct {
	jobRepo       repository.JobRepository
	caregiverRepo repository.CaregiverRepository
	memberRepo    repository.MemberRepository
	publisher     events.Publisher
	log           logger.Logger
}

// NewJobService creates a new job service.
func NewJobService(
	jobRepo repository.JobRepository,
	caregiverRepo repository.CaregiverRepository,
	memberRepo repository.MemberRepository,
	publisher events.Publisher,
	log logger.Logger,
) JobService {
	return &jobService{
		jobRepo:       jobRepo,
		caregiverRepo: caregiverRepo,
		memberRepo:    memberRepo,
		publisher:     publisher,
		log:           log.With("component", "jobs"),
	}
}

func (s *jobService) ListJobs(ctx context.Context, category model.Category) ([]model.JobListing, error) {
	if category != "" {
		if err := validateCategory(category); err != nil {
			return nil, err
		}
	}
	return s.jobRepo.List(ctx, category)
}

func (s *jobService) PostJob(ctx context.Context, principal auth.Principal, category model.Category, requirements *string) (*model.Job, error) {
	if err := s.requireMember(ctx, principal); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	job := &model.Job{
		MemberUserID:           principal.UserID,
		RequiredCaregivingType: category,
		OtherRequirements:      requirements,
		DatePosted:             model.Today(),
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	publish(ctx, s.publisher, s.log, events.TypeJobPosted, events.JobPosted{
		JobID: job.JobID, MemberUserID: job.MemberUserID, Category: string(job.RequiredCaregivingType),
	})
	return job, nil
}

func (s *jobService) ApplyToJob(ctx context.Context, principal auth.Principal, jobID uint) (bool, error) {
	if err := s.requireCaregiver(ctx, principal); err != nil {
		return false, err
	}
	if _, err := s.jobRepo.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.ErrJobNotFound
		}
		return false, fmt.Errorf("find job: %w", err)
	}

	applied, err := s.jobRepo.Apply(ctx, &model.JobApplication{
		CaregiverUserID: principal.UserID,
		JobID:           jobID,
		DateApplied:     model.Today(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return false, errors.ErrJobNotFound
		}
		return false, fmt.Errorf("apply: %w", err)
	}

	if applied {
		publish(ctx, s.publisher, s.log, events.TypeApplicationSubmitted, events.ApplicationSubmitted{
			CaregiverUserID: principal.UserID, JobID: jobID,
		})
	} else {
		s.log.Debug("duplicate application ignored", "caregiver_user_id", principal.UserID, "job_id", jobID)
	}
	return applied, nil
}

func (s *jobService) AppliedJobIDs(ctx context.Context, principal auth.Principal) ([]uint, error) {
	if err := s.requireCaregiver(ctx, principal); err != nil {
		return nil, err
	}
	return s.jobRepo.AppliedJobIDs(ctx, principal.UserID)
}

func (s *jobService) ApplicantsForJobs(ctx context.Context, jobIDs []uint) (map[uint][]model.Applicant, error) {
	result := make(map[uint][]model.Applicant, len(jobIDs))
	for _, id := range jobIDs {
		result[id] = []model.Applicant{}
	}
	if len(jobIDs) == 0 {
		return result, nil
	}

	rows, err := s.jobRepo.Applicants(ctx, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}
	for _, row := range rows {
		result[row.JobID] = append(result[row.JobID], row.Applicant())
	}
	return result, nil
}

func (s *jobService) MemberJobs(ctx context.Context, principal auth.Principal) ([]MemberJob, error) {
	if err := s.requireMember(ctx, principal); err != nil {
		return nil, err
	}

	listings, err := s.jobRepo.ListByMember(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.JobID)
	}
	applicants, err := s.ApplicantsForJobs(ctx, ids)
	if err != nil {
		return nil, err
	}

	jobs := make([]MemberJob, 0, len(listings))
	for _, l := range listings {
		jobs = append(jobs, MemberJob{JobListing: l, Applicants: applicants[l.JobID]})
	}
	return jobs, nil
}

func (s *jobService) requireMember(ctx context.Context, principal auth.Principal) error {
	ok, err := s.memberRepo.Exists(ctx, principal.UserID)
	if err != nil {
		return fmt.Errorf("check member: %w", err)
	}
	if !ok {
		return errors.ErrMemberRequired
	}
	return nil
}

func (s *jobService) requireCaregiver(ctx context.Context, principal auth.Principal) error {
	ok, err := s.caregiverRepo.Exists(ctx, principal.UserID)
	if err != nil {
		return fmt.Errorf("check caregiver: %w", err)
	}
	if !ok {
		return errors.ErrCaregiverRequired
	}
	return nil
}
