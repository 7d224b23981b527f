package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// JobListing is a job joined with the member who posted it.
type JobListing struct {
	JobID                  uint           `json:"job_id"`
	MemberUserID           uint           `json:"member_user_id"`
	RequiredCaregivingType Category       `json:"required_caregiving_type"`
	OtherRequirements      *string        `json:"other_requirements,omitempty"`
	DatePosted             datatypes.Date `json:"date_posted"`
	MemberGivenName        string         `json:"member_given_name"`
	MemberSurname          string         `json:"member_surname"`
	MemberCity             string         `json:"member_city"`
}

// Applicant summarises a caregiver who applied to a job.
type Applicant struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          *string  `json:"phone,omitempty"`
	CaregivingType Category `json:"caregiving_type"`
}

// CaregiverListing is a caregiver profile joined with its user row.
type CaregiverListing struct {
	CaregiverUserID    uint                `json:"caregiver_user_id"`
	GivenName          string              `json:"given_name"`
	Surname            string              `json:"surname"`
	Email              string              `json:"email"`
	City               string              `json:"city"`
	PhoneNumber        *string             `json:"phone_number,omitempty"`
	ProfileDescription *string             `json:"profile_description,omitempty"`
	Photo              *string             `json:"photo,omitempty"`
	Gender             *Gender             `json:"gender,omitempty"`
	CaregivingType     Category            `json:"caregiving_type"`
	HourlyRate         decimal.NullDecimal `json:"hourly_rate"`
}

// ApplicantCount is the number of applications a job received.
type ApplicantCount struct {
	JobID          uint  `json:"job_id"`
	ApplicantCount int64 `json:"applicant_count"`
}

// CaregiverRate pairs a caregiver's given name with their hourly rate.
type CaregiverRate struct {
	GivenName  string          `json:"given_name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// AppointmentParties names both sides of an appointment.
type AppointmentParties struct {
	CaregiverName string `json:"caregiver_name"`
	MemberName    string `json:"member_name"`
}

// JobRequirement is a job id with its free-text requirements.
type JobRequirement struct {
	JobID             uint    `json:"job_id"`
	OtherRequirements *string `json:"other_requirements,omitempty"`
}

// AppointmentHours is the booked work hours of one appointment.
type AppointmentHours struct {
	AppointmentID uint `json:"appointment_id"`
	WorkHours     *int `json:"work_hours,omitempty"`
}

// MemberSeeking is a member matched by city, house rules and posted job category.
type MemberSeeking struct {
	MemberUserID uint    `json:"member_user_id"`
	GivenName    string  `json:"given_name"`
	Surname      string  `json:"surname"`
	City         string  `json:"city"`
	HouseRules   *string `json:"house_rules,omitempty"`
}

// JobApplicationView is a row of view_job_applications.
type JobApplicationView struct {
	JobID         uint           `json:"job_id"`
	Employer      string         `json:"employer"`
	ApplicantName string         `json:"applicant_name"`
	DateApplied   datatypes.Date `json:"date_applied"`
}
