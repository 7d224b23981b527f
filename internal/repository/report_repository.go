package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"carehub/internal/model"
)

// ReportRepository runs the read-only analytical queries.
type ReportRepository interface {
	ApplicantCounts(ctx context.Context) ([]model.ApplicantCount, error)
	TotalAcceptedHours(ctx context.Context) (sql.NullInt64, error)
	AverageAcceptedPay(ctx context.Context) (decimal.NullDecimal, error)
	AboveAverageCaregivers(ctx context.Context) ([]model.CaregiverRate, error)
	TotalAcceptedCost(ctx context.Context) (decimal.NullDecimal, error)
	AcceptedAppointmentNames(ctx context.Context) ([]model.AppointmentParties, error)
	JobsWithRequirement(ctx context.Context, text string) ([]model.JobRequirement, error)
	WorkHoursByCategory(ctx context.Context, category model.Category) ([]model.AppointmentHours, error)
	MembersSeeking(ctx context.Context, city, houseRule string, category model.Category) ([]model.MemberSeeking, error)
	JobApplications(ctx context.Context) ([]model.JobApplicationView, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository builds a GORM-backed report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// ApplicantCounts counts applications per job, jobs without any included at zero.
func (r *reportRepository) ApplicantCounts(ctx context.Context) ([]model.ApplicantCount, error) {
	var rows []model.ApplicantCount
	err := r.db.WithContext(ctx).
		Table("jobs").
		Select("jobs.job_id, COUNT(job_applications.caregiver_user_id) AS applicant_count").
		Joins("LEFT JOIN job_applications ON job_applications.job_id = jobs.job_id").
		Group("jobs.job_id").
		Order("jobs.job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TotalAcceptedHours is invalid when no appointment has been accepted.
func (r *reportRepository) TotalAcceptedHours(ctx context.Context) (sql.NullInt64, error) {
	var row struct{ TotalHours sql.NullInt64 }
	err := r.db.WithContext(ctx).
		Table("appointments").
		Select("SUM(work_hours) AS total_hours").
		Where("status = ?", model.AppointmentStatusAccepted).
		Scan(&row).Error
	return row.TotalHours, err
}

// acceptedCaregivers joins every caregiver to each of its accepted appointments, so a caregiver
// appears once per accepted appointment.
func (r *reportRepository) acceptedCaregivers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("caregivers").
		Joins("JOIN appointments ON appointments.caregiver_user_id = caregivers.caregiver_user_id").
		Where("appointments.status = ?", model.AppointmentStatusAccepted)
}

// AverageAcceptedPay averages hourly rates over accepted appointments. A caregiver with several
// accepted appointments weighs in once per appointment.
func (r *reportRepository) AverageAcceptedPay(ctx context.Context) (decimal.NullDecimal, error) {
	var row struct{ AverageRate decimal.NullDecimal }
	err := r.acceptedCaregivers(ctx).Select("AVG(caregivers.hourly_rate) AS average_rate").Scan(&row).Error
	return row.AverageRate, err
}

// AboveAverageCaregivers lists each caregiver whose rate is strictly above AverageAcceptedPay once.
func (r *reportRepository) AboveAverageCaregivers(ctx context.Context) ([]model.CaregiverRate, error) {
	average := r.acceptedCaregivers(ctx).Select("AVG(caregivers.hourly_rate)")

	var rows []model.CaregiverRate
	err := r.acceptedCaregivers(ctx).
		Select("users.given_name, caregivers.hourly_rate").
		Joins("JOIN users ON users.user_id = caregivers.caregiver_user_id").
		Where("caregivers.hourly_rate > (?)", average).
		Group("users.given_name, caregivers.hourly_rate").
		Order("users.given_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TotalAcceptedCost sums rate times hours over accepted appointments.
func (r *reportRepository) TotalAcceptedCost(ctx context.Context) (decimal.NullDecimal, error) {
	var row struct{ TotalCost decimal.NullDecimal }
	err := r.acceptedCaregivers(ctx).
		Select("SUM(caregivers.hourly_rate * appointments.work_hours) AS total_cost").
		Scan(&row).Error
	return row.TotalCost, err
}

func (r *reportRepository) AcceptedAppointmentNames(ctx context.Context) ([]model.AppointmentParties, error) {
	var rows []struct {
		CaregiverGivenName string
		CaregiverSurname   string
		MemberGivenName    string
		MemberSurname      string
	}
	err := r.db.WithContext(ctx).
		Table("appointments").
		Select(`cu.given_name AS caregiver_given_name, cu.surname AS caregiver_surname,
			mu.given_name AS member_given_name, mu.surname AS member_surname`).
		Joins("JOIN users cu ON cu.user_id = appointments.caregiver_user_id").
		Joins("JOIN users mu ON mu.user_id = appointments.member_user_id").
		Where("appointments.status = ?", model.AppointmentStatusAccepted).
		Order("appointments.appointment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	parties := make([]model.AppointmentParties, 0, len(rows))
	for _, row := range rows {
		parties = append(parties, model.AppointmentParties{
			CaregiverName: row.CaregiverGivenName + " " + row.CaregiverSurname,
			MemberName:    row.MemberGivenName + " " + row.MemberSurname,
		})
	}
	return parties, nil
}

// JobsWithRequirement matches text case-insensitively anywhere in the job requirements.
func (r *reportRepository) JobsWithRequirement(ctx context.Context, text string) ([]model.JobRequirement, error) {
	var rows []model.JobRequirement
	err := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Select("job_id, other_requirements").
		Where("LOWER(other_requirements) LIKE ? ESCAPE '!'", containsPattern(strings.ToLower(text))).
		Order("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) WorkHoursByCategory(ctx context.Context, category model.Category) ([]model.AppointmentHours, error) {
	var rows []model.AppointmentHours
	err := r.db.WithContext(ctx).
		Table("appointments").
		Select("appointments.appointment_id, appointments.work_hours").
		Joins("JOIN caregivers ON caregivers.caregiver_user_id = appointments.caregiver_user_id").
		Where("caregivers.caregiving_type = ?", category).
		Order("appointments.appointment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MembersSeeking finds members living in city whose house rules mention houseRule and who
// posted at least one job of category.
func (r *reportRepository) MembersSeeking(ctx context.Context, city, houseRule string, category model.Category) ([]model.MemberSeeking, error) {
	var rows []model.MemberSeeking
	err := r.db.WithContext(ctx).
		Table("members").
		Distinct("members.member_user_id", "users.given_name", "users.surname", "users.city", "members.house_rules").
		Joins("JOIN users ON users.user_id = members.member_user_id").
		Joins("JOIN jobs ON jobs.member_user_id = members.member_user_id").
		Where("users.city = ?", city).
		Where("LOWER(members.house_rules) LIKE ? ESCAPE '!'", containsPattern(strings.ToLower(houseRule))).
		Where("jobs.required_caregiving_type = ?", category).
		Order("members.member_user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) JobApplications(ctx context.Context) ([]model.JobApplicationView, error) {
	var rows []model.JobApplicationView
	err := r.db.WithContext(ctx).
		Table("view_job_applications").
		Order("job_id").
		Order("applicant_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
