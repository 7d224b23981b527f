package model

// Member is the one-to-one member profile of a User.
type Member struct {
	MemberUserID         uint    `json:"member_user_id" gorm:"primaryKey;autoIncrement:false"`
	HouseRules           *string `json:"house_rules,omitempty" gorm:"type:text"`
	DependentDescription *string `json:"dependent_description,omitempty" gorm:"type:text"`

	// Relations
	Address      *Address      `json:"address,omitempty" gorm:"foreignKey:MemberUserID;references:MemberUserID;constraint:OnDelete:CASCADE"`
	Jobs         []Job         `json:"-" gorm:"foreignKey:MemberUserID;references:MemberUserID;constraint:OnDelete:CASCADE"`
	Appointments []Appointment `json:"-" gorm:"foreignKey:MemberUserID;references:MemberUserID;constraint:OnDelete:CASCADE"`
}

// Address is the single postal address of a Member.
type Address struct {
	MemberUserID uint    `json:"member_user_id" gorm:"primaryKey;autoIncrement:false"`
	HouseNumber  *string `json:"house_number,omitempty" gorm:"size:20"`
	Street       *string `json:"street,omitempty" gorm:"size:100"`
	Town         *string `json:"town,omitempty" gorm:"size:50"`
}
