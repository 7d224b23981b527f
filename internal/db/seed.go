package db

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"carehub/internal/model"
)

// SeedSummary reports how many rows Seed inserted per table.
type SeedSummary struct {
	Users        int `json:"users"`
	Caregivers   int `json:"caregivers"`
	Members      int `json:"members"`
	Addresses    int `json:"addresses"`
	Jobs         int `json:"jobs"`
	Applications int `json:"applications"`
	Appointments int `json:"appointments"`
}

// Seed replaces the contents of every table with the demo data set in a single transaction.
// Users 1-10 are caregivers, 11-20 are members; passwords are stored as legacy plain text
// and get hardened on first login.
func Seed(ctx context.Context, gormDB *gorm.DB) (*SeedSummary, error) {
	users, caregivers, members, addresses, jobs, applications, appointments := seedData()

	err := gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearAll(tx); err != nil {
			return err
		}

		steps := []struct {
			name string
			rows interface{}
		}{
			{"users", &users},
			{"caregivers", &caregivers},
			{"members", &members},
			{"addresses", &addresses},
			{"jobs", &jobs},
			{"job_applications", &applications},
			{"appointments", &appointments},
		}
		for _, step := range steps {
			if err := tx.Omit(clause.Associations).Create(step.rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", step.name, err)
			}
		}

		for _, seq := range [][2]string{{"users", "user_id"}, {"jobs", "job_id"}, {"appointments", "appointment_id"}} {
			if err := ResyncSequence(tx, seq[0], seq[1]); err != nil {
				return fmt.Errorf("resync %s: %w", seq[0], err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SeedSummary{
		Users:        len(users),
		Caregivers:   len(caregivers),
		Members:      len(members),
		Addresses:    len(addresses),
		Jobs:         len(jobs),
		Applications: len(applications),
		Appointments: len(appointments),
	}, nil
}

// clearAll empties every table. Deleting users cascades to all dependent rows.
func clearAll(tx *gorm.DB) error {
	if tx.Dialector.Name() == "postgres" {
		return tx.Exec("TRUNCATE TABLE appointments, job_applications, jobs, addresses, members, caregivers, identities, users CASCADE").Error
	}
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.User{}).Error
}

func seedData() (
	[]model.User, []model.Caregiver, []model.Member, []model.Address,
	[]model.Job, []model.JobApplication, []model.Appointment,
) {
	type person struct {
		email, given, surname, city, phone, bio string
	}
	people := []person{
		{"alice@mail.com", "Alice", "Smith", "Astana", "87011111111", "Experienced nurse"},
		{"bob@mail.com", "Bob", "Brown", "Almaty", "87011111112", "Loves kids"},
		{"charlie@mail.com", "Charlie", "Davis", "Astana", "87011111113", "Patient and kind"},
		{"diana@mail.com", "Diana", "Evans", "Shymkent", "87011111114", "Energetic student"},
		{"evan@mail.com", "Evan", "Foster", "Astana", "87011111115", "Professional care"},
		{"fiona@mail.com", "Fiona", "Green", "Almaty", "87011111116", "Certified babysitter"},
		{"george@mail.com", "George", "Harris", "Astana", "87011111117", "Good with pets too"},
		{"hannah@mail.com", "Hannah", "White", "Astana", "87011111118", "Special needs exp"},
		{"ivan@mail.com", "Ivan", "Black", "Almaty", "87011111119", "Part-time helper"},
		{"julia@mail.com", "Julia", "Clarke", "Astana", "87011111120", "Music tutor and sitter"},
		{"kevin@mail.com", "Kevin", "King", "Astana", "87771112222", "Busy father"},
		{"laura@mail.com", "Laura", "Lee", "Almaty", "87771113333", "Need help weekends"},
		{"mike@mail.com", "Mike", "Miller", "Astana", "87771114444", "Looking for elderly care"},
		{"nina@mail.com", "Nina", "Nelson", "Shymkent", "87771115555", "Single mom"},
		{"oscar@mail.com", "Oscar", "Orton", "Astana", "87771116666", "Need urgent help"},
		{"paul@mail.com", "Paul", "Parker", "Almaty", "87771117777", "Frequent traveler"},
		{"quinn@mail.com", "Quinn", "Quick", "Astana", "87771118888", "Three kids"},
		{"rachel@mail.com", "Rachel", "Red", "Astana", "87771119999", "Live near park"},
		{"amina@mail.com", "Amina", "Aminova", "Astana", "87770001111", "Requires regular help"},
		{"arman@mail.com", "Arman", "Armanov", "Almaty", "87770002222", "Looking for professional"},
	}
	users := make([]model.User, 0, len(people))
	for i, p := range people {
		users = append(users, model.User{
			UserID:             uint(i + 1),
			Email:              p.email,
			GivenName:          p.given,
			Surname:            p.surname,
			City:               p.city,
			PhoneNumber:        ptr(p.phone),
			ProfileDescription: ptr(p.bio),
			Password:           fmt.Sprintf("pass%d", i+1),
			PasswordScheme:     model.CredentialPlain,
		})
	}

	type care struct {
		gender   model.Gender
		category model.Category
		rate     string
	}
	cares := []care{
		{model.GenderFemale, model.CategoryBabysitter, "15.00"},
		{model.GenderMale, model.CategoryElderlyCare, "8.00"},
		{model.GenderMale, model.CategoryBabysitter, "12.00"},
		{model.GenderFemale, model.CategoryPlaymate, "9.00"},
		{model.GenderMale, model.CategoryElderlyCare, "20.00"},
		{model.GenderFemale, model.CategoryBabysitter, "11.50"},
		{model.GenderMale, model.CategoryPlaymate, "10.00"},
		{model.GenderFemale, model.CategoryElderlyCare, "18.00"},
		{model.GenderMale, model.CategoryBabysitter, "14.00"},
		{model.GenderFemale, model.CategoryPlaymate, "13.00"},
	}
	caregivers := make([]model.Caregiver, 0, len(cares))
	for i, c := range cares {
		gender := c.gender
		caregivers = append(caregivers, model.Caregiver{
			CaregiverUserID: uint(i + 1),
			Photo:           ptr(fmt.Sprintf("photo%d.jpg", i+1)),
			Gender:          &gender,
			CaregivingType:  c.category,
			HourlyRate:      decimal.NewNullDecimal(decimal.RequireFromString(c.rate)),
		})
	}

	type household struct {
		rules, dependent, houseNumber, street, town string
	}
	households := []household{
		{"No pets.", "Elderly father with mobility issues", "10A", "Mangilik El", "Astana"},
		{"No smoking", "Two energetic twins", "5B", "Abay", "Almaty"},
		{"Shoes off", "Grandmother needs company", "12", "Turan", "Astana"},
		{"Vegetarian food only", "5 year old girl", "77", "Tauke Khan", "Shymkent"},
		{"Quiet after 9pm", "Newborn baby", "3", "Saryarka", "Astana"},
		{"Be on time", "10 year old boy", "99", "Dostyk", "Almaty"},
		{"Clean up toys", "Toddler", "44", "Kunaev", "Astana"},
		{"No loud music", "Sick relative", "101", "Kabanbay Batyr", "Astana"},
		{"Hygiene is priority", "Daughter needs tutoring", "102", "Kabanbay Batyr", "Astana"},
		{"Safety first", "Son likes painting", "55", "Gogol", "Almaty"},
	}
	members := make([]model.Member, 0, len(households))
	addresses := make([]model.Address, 0, len(households))
	for i, h := range households {
		id := uint(i + 11)
		members = append(members, model.Member{
			MemberUserID:         id,
			HouseRules:           ptr(h.rules),
			DependentDescription: ptr(h.dependent),
		})
		addresses = append(addresses, model.Address{
			MemberUserID: id,
			HouseNumber:  ptr(h.houseNumber),
			Street:       ptr(h.street),
			Town:         ptr(h.town),
		})
	}

	type posting struct {
		member       uint
		category     model.Category
		requirements string
	}
	postings := []posting{
		{11, model.CategoryElderlyCare, "Must be strong and patient"},
		{12, model.CategoryBabysitter, "English speaking preferred"},
		{13, model.CategoryElderlyCare, "Must be soft-spoken and kind"},
		{14, model.CategoryBabysitter, "Weekend availability"},
		{19, model.CategoryBabysitter, "Math tutoring required"},
		{19, model.CategoryPlaymate, "Artistic skills"},
		{20, model.CategoryBabysitter, "Driver license needed"},
		{15, model.CategoryBabysitter, "Night shift"},
		{16, model.CategoryPlaymate, "Sports oriented"},
		{11, model.CategoryElderlyCare, "Cooking skills"},
	}
	jobs := make([]model.Job, 0, len(postings))
	for i, p := range postings {
		jobs = append(jobs, model.Job{
			JobID:                  uint(i + 1),
			MemberUserID:           p.member,
			RequiredCaregivingType: p.category,
			OtherRequirements:      ptr(p.requirements),
			DatePosted:             model.NewDate(2025, time.October, i+1),
		})
	}

	applications := []model.JobApplication{
		{CaregiverUserID: 1, JobID: 2, DateApplied: model.NewDate(2025, time.October, 3)},
		{CaregiverUserID: 2, JobID: 1, DateApplied: model.NewDate(2025, time.October, 2)},
		{CaregiverUserID: 3, JobID: 3, DateApplied: model.NewDate(2025, time.October, 4)},
		{CaregiverUserID: 4, JobID: 6, DateApplied: model.NewDate(2025, time.October, 7)},
		{CaregiverUserID: 5, JobID: 1, DateApplied: model.NewDate(2025, time.October, 2)},
		{CaregiverUserID: 6, JobID: 5, DateApplied: model.NewDate(2025, time.October, 6)},
		{CaregiverUserID: 1, JobID: 4, DateApplied: model.NewDate(2025, time.October, 5)},
		{CaregiverUserID: 9, JobID: 7, DateApplied: model.NewDate(2025, time.October, 8)},
		{CaregiverUserID: 10, JobID: 9, DateApplied: model.NewDate(2025, time.October, 10)},
		{CaregiverUserID: 8, JobID: 10, DateApplied: model.NewDate(2025, time.October, 11)},
	}

	type visit struct {
		caregiver, member uint
		day, hour, hours  int
		status            model.AppointmentStatus
	}
	visits := []visit{
		{1, 12, 1, 9, 4, model.AppointmentStatusAccepted},
		{2, 11, 2, 14, 3, model.AppointmentStatusAccepted},
		{3, 13, 3, 10, 5, model.AppointmentStatusPending},
		{4, 19, 4, 12, 2, model.AppointmentStatusAccepted},
		{5, 11, 5, 8, 6, model.AppointmentStatusDeclined},
		{6, 12, 6, 18, 3, model.AppointmentStatusAccepted},
		{8, 15, 7, 20, 8, model.AppointmentStatusAccepted},
		{9, 20, 8, 15, 4, model.AppointmentStatusPending},
		{10, 16, 9, 11, 2, model.AppointmentStatusAccepted},
		{1, 14, 10, 9, 5, model.AppointmentStatusAccepted},
	}
	appointments := make([]model.Appointment, 0, len(visits))
	for i, v := range visits {
		hours := v.hours
		appointments = append(appointments, model.Appointment{
			AppointmentID:   uint(i + 1),
			CaregiverUserID: v.caregiver,
			MemberUserID:    v.member,
			AppointmentDate: model.NewDate(2025, time.November, v.day),
			AppointmentTime: datatypes.NewTime(v.hour, 0, 0, 0),
			WorkHours:       &hours,
			Status:          v.status,
		})
	}

	return users, caregivers, members, addresses, jobs, applications, appointments
}

func ptr(s string) *string {
	return &s
}
