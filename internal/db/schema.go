package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"carehub/internal/model"
)

const jobApplicationsView = "view_job_applications"

const createJobApplicationsView = `CREATE VIEW view_job_applications AS
SELECT j.job_id,
       u_mem.given_name AS employer,
       u_app.given_name AS applicant_name,
       ja.date_applied
FROM job_applications ja
JOIN jobs j ON ja.job_id = j.job_id
JOIN users u_mem ON j.member_user_id = u_mem.user_id
JOIN users u_app ON ja.caregiver_user_id = u_app.user_id`

// Models lists every persisted model, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Identity{},
		&model.Caregiver{},
		&model.Member{},
		&model.Address{},
		&model.Job{},
		&model.JobApplication{},
		&model.Appointment{},
	}
}

// CreateSchema drops any previous version of the schema and rebuilds every table,
// foreign key (all ON DELETE CASCADE) and the job applications view.
func CreateSchema(ctx context.Context, gormDB *gorm.DB) error {
	tx := gormDB.WithContext(ctx)

	if err := dropView(tx); err != nil {
		return err
	}
	if err := tx.Migrator().DropTable(Models()...); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return EnsureSchema(ctx, gormDB)
}

// EnsureSchema creates missing tables and columns without touching existing rows.
// The view holds no data and is always rebuilt.
func EnsureSchema(ctx context.Context, gormDB *gorm.DB) error {
	tx := gormDB.WithContext(ctx)

	if err := tx.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if err := dropView(tx); err != nil {
		return err
	}
	if err := tx.Exec(createJobApplicationsView).Error; err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	return nil
}

func dropView(tx *gorm.DB) error {
	if err := tx.Exec("DROP VIEW IF EXISTS " + jobApplicationsView).Error; err != nil {
		return fmt.Errorf("drop view: %w", err)
	}
	return nil
}
