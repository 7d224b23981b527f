package model

// Category is a caregiving skill shared by caregiver profiles and job postings.
type Category string

const (
	CategoryBabysitter  Category = "Babysitter"
	CategoryElderlyCare Category = "Elderly Care"
	CategoryPlaymate    Category = "Playmate for children"
)

// Categories returns every caregiving category in display order.
func Categories() []Category {
	return []Category{CategoryBabysitter, CategoryElderlyCare, CategoryPlaymate}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBabysitter, CategoryElderlyCare, CategoryPlaymate:
		return true
	}
	return false
}

// Gender of a caregiver as stored on the profile.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// AppointmentStatus represents the status of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "Pending"
	AppointmentStatusAccepted AppointmentStatus = "Accepted"
	AppointmentStatusDeclined AppointmentStatus = "Declined"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusAccepted, AppointmentStatusDeclined:
		return true
	}
	return false
}

// CredentialScheme says how users.password is encoded.
type CredentialScheme string

const (
	// CredentialPlain marks a legacy password stored as entered.
	CredentialPlain CredentialScheme = "plain"
	// CredentialBcrypt marks a bcrypt digest.
	CredentialBcrypt CredentialScheme = "bcrypt"
)
