package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Appointment is a scheduled engagement between a Caregiver and a Member.
type Appointment struct {
	AppointmentID   uint              `json:"appointment_id" gorm:"primaryKey"`
	CaregiverUserID uint              `json:"caregiver_user_id" gorm:"not null;index"`
	MemberUserID    uint              `json:"member_user_id" gorm:"not null;index"`
	AppointmentDate datatypes.Date    `json:"appointment_date" gorm:"not null"`
	AppointmentTime datatypes.Time    `json:"appointment_time" gorm:"not null"`
	WorkHours       *int              `json:"work_hours,omitempty" gorm:"check:chk_appointments_work_hours,work_hours >= 0"`
	Status          AppointmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index;check:chk_appointments_status,status IN ('Pending','Accepted','Declined')"`
}

// BeforeCreate defaults the status to Pending.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = AppointmentStatusPending
	}
	return nil
}
