package model

import "github.com/shopspring/decimal"

// Caregiver is the one-to-one caregiver profile of a User.
type Caregiver struct {
	CaregiverUserID uint                `json:"caregiver_user_id" gorm:"primaryKey;autoIncrement:false"`
	Photo           *string             `json:"photo,omitempty" gorm:"size:255"`
	Gender          *Gender             `json:"gender,omitempty" gorm:"size:10"`
	CaregivingType  Category            `json:"caregiving_type" gorm:"size:50;not null;check:chk_caregivers_caregiving_type,caregiving_type IN ('Babysitter','Elderly Care','Playmate for children')"`
	HourlyRate      decimal.NullDecimal `json:"hourly_rate" gorm:"type:decimal(10,2);check:chk_caregivers_hourly_rate,hourly_rate >= 0"`

	// Relations
	Applications []JobApplication `json:"-" gorm:"foreignKey:CaregiverUserID;references:CaregiverUserID;constraint:OnDelete:CASCADE"`
	Appointments []Appointment    `json:"-" gorm:"foreignKey:CaregiverUserID;references:CaregiverUserID;constraint:OnDelete:CASCADE"`
}
