package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Job is a caregiving request posted by a Member.
type Job struct {
	JobID                  uint           `json:"job_id" gorm:"primaryKey"`
	MemberUserID           uint           `json:"member_user_id" gorm:"not null;index"`
	RequiredCaregivingType Category       `json:"required_caregiving_type" gorm:"size:50;not null;check:chk_jobs_required_caregiving_type,required_caregiving_type IN ('Babysitter','Elderly Care','Playmate for children')"`
	OtherRequirements      *string        `json:"other_requirements,omitempty" gorm:"type:text"`
	DatePosted             datatypes.Date `json:"date_posted" gorm:"not null"`

	// Relations
	Applications []JobApplication `json:"-" gorm:"foreignKey:JobID;references:JobID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate stamps the posting date with today when none was given.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if time.Time(j.DatePosted).IsZero() {
		j.DatePosted = Today()
	}
	return nil
}

// JobApplication links a Caregiver to a Job at most once.
type JobApplication struct {
	CaregiverUserID uint           `json:"caregiver_user_id" gorm:"primaryKey;autoIncrement:false"`
	JobID           uint           `json:"job_id" gorm:"primaryKey;autoIncrement:false;index"`
	DateApplied     datatypes.Date `json:"date_applied" gorm:"not null"`
}

// BeforeCreate stamps the application date with today when none was given.
func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if time.Time(a.DateApplied).IsZero() {
		a.DateApplied = Today()
	}
	return nil
}

// Today returns the current UTC calendar date.
func Today() datatypes.Date {
	y, m, d := time.Now().UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// NewDate builds a calendar date.
func NewDate(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
