package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"carehub/internal/db"
	"carehub/internal/model"
)

// ApplicantRow is one application joined with the applying caregiver.
type ApplicantRow struct {
	JobID          uint
	GivenName      string
	Surname        string
	Email          string
	PhoneNumber    *string
	CaregivingType model.Category
}

// Applicant converts the row into its public summary.
func (r ApplicantRow) Applicant() model.Applicant {
	return model.Applicant{
		Name:           r.GivenName + " " + r.Surname,
		Email:          r.Email,
		Phone:          r.PhoneNumber,
		CaregivingType: r.CaregivingType,
	}
}

// JobRepository persists jobs and the applications caregivers send to them.
type JobRepository interface {
	List(ctx context.Context, category model.Category) ([]model.JobListing, error)
	ListByMember(ctx context.Context, memberID uint) ([]model.JobListing, error)
	FindByID(ctx context.Context, id uint) (*model.Job, error)
	Create(ctx context.Context, job *model.Job) error
	// Apply records an application and reports whether a new row was written.
	Apply(ctx context.Context, application *model.JobApplication) (bool, error)
	AppliedJobIDs(ctx context.Context, caregiverID uint) ([]uint, error)
	Applicants(ctx context.Context, jobIDs []uint) ([]ApplicantRow, error)
	DeleteByMemberName(ctx context.Context, givenName, surname string) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo JobRepository) error) error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository builds a GORM-backed job repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) listings(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("jobs").
		Select(`jobs.job_id, jobs.member_user_id, jobs.required_caregiving_type, jobs.other_requirements,
			jobs.date_posted, users.given_name AS member_given_name, users.surname AS member_surname,
			users.city AS member_city`).
		Joins("JOIN users ON users.user_id = jobs.member_user_id").
		Order("jobs.date_posted DESC").
		Order("jobs.job_id DESC")
}

// List returns jobs newest first, optionally restricted to one category.
func (r *jobRepository) List(ctx context.Context, category model.Category) ([]model.JobListing, error) {
	q := r.listings(ctx)
	if category != "" {
		q = q.Where("jobs.required_caregiving_type = ?", category)
	}
	var rows []model.JobListing
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jobRepository) ListByMember(ctx context.Context, memberID uint) ([]model.JobListing, error) {
	var rows []model.JobListing
	if err := r.listings(ctx).Where("jobs.member_user_id = ?", memberID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jobRepository) FindByID(ctx context.Context, id uint) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Create inserts the job after moving the id sequence past rows loaded with explicit ids.
func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ResyncSequence(tx, "jobs", "job_id"); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(job).Error
	})
}

func (r *jobRepository) Apply(ctx context.Context, application *model.JobApplication) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(application)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *jobRepository) AppliedJobIDs(ctx context.Context, caregiverID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.JobApplication{}).
		Where("caregiver_user_id = ?", caregiverID).
		Order("job_id").
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Applicants loads every applicant of the given jobs in one query.
func (r *jobRepository) Applicants(ctx context.Context, jobIDs []uint) ([]ApplicantRow, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	var rows []ApplicantRow
	err := r.db.WithContext(ctx).
		Table("job_applications").
		Select(`job_applications.job_id, users.given_name, users.surname, users.email,
			users.phone_number, caregivers.caregiving_type`).
		Joins("JOIN caregivers ON caregivers.caregiver_user_id = job_applications.caregiver_user_id").
		Joins("JOIN users ON users.user_id = caregivers.caregiver_user_id").
		Where("job_applications.job_id IN ?", jobIDs).
		Order("job_applications.job_id").
		Order("job_applications.date_applied").
		Order("job_applications.caregiver_user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteByMemberName removes every job posted by the member with the given full name.
func (r *jobRepository) DeleteByMemberName(ctx context.Context, givenName, surname string) (int64, error) {
	owners := r.db.Model(&model.User{}).Select("user_id").Where("given_name = ? AND surname = ?", givenName, surname)
	res := r.db.WithContext(ctx).Where("member_user_id IN (?)", owners).Delete(&model.Job{})
	return res.RowsAffected, res.Error
}

// WithTransaction executes fn within a database transaction.
func (r *jobRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo JobRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &jobRepository{db: tx})
	})
}
