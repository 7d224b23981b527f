package model

// User is the canonical account row every caregiver and member profile hangs off.
type User struct {
	UserID             uint             `json:"user_id" gorm:"primaryKey"`
	Email              string           `json:"email" gorm:"uniqueIndex;size:100;not null"`
	GivenName          string           `json:"given_name" gorm:"size:50;not null"`
	Surname            string           `json:"surname" gorm:"size:50;not null"`
	City               string           `json:"city" gorm:"size:50;not null"`
	PhoneNumber        *string          `json:"phone_number,omitempty" gorm:"size:20"`
	ProfileDescription *string          `json:"profile_description,omitempty" gorm:"type:text"`
	Password           string           `json:"-" gorm:"size:100;not null"`
	PasswordScheme     CredentialScheme `json:"-" gorm:"size:16;not null;default:'plain'"`

	// Relations
	Caregiver  *Caregiver `json:"caregiver,omitempty" gorm:"foreignKey:CaregiverUserID;references:UserID;constraint:OnDelete:CASCADE"`
	Member     *Member    `json:"member,omitempty" gorm:"foreignKey:MemberUserID;references:UserID;constraint:OnDelete:CASCADE"`
	Identities []Identity `json:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

// FullName returns "given surname".
func (u User) FullName() string {
	return u.GivenName + " " + u.Surname
}

// Role describes which profile a user owns.
type Role string

const (
	RoleCaregiver Role = "caregiver"
	RoleMember    Role = "member"
	RoleNone      Role = ""
)
