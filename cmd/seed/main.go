package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"carehub/internal/config"
	"carehub/internal/db"
	"carehub/internal/logger"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/internal/service"
)

func main() {
	schema := flag.Bool("schema", false, "drop and recreate every table before anything else")
	seed := flag.Bool("seed", true, "replace all rows with the demo data set")
	commission := flag.Bool("commission", false, "apply the platform commission to every hourly rate")
	report := flag.Bool("report", false, "print every analytical report as JSON")
	flag.Parse()

	cfg := config.Load()
	log := logger.NewFromEnv().With("service", "carehub-seed")

	if err := run(context.Background(), cfg, log, options{
		schema:     *schema,
		seed:       *seed,
		commission: *commission,
		report:     *report,
	}); err != nil {
		log.InternalError("seed failed", err)
		os.Exit(1)
	}
}

type options struct {
	schema, seed, commission, report bool
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, opts options) error {
	gormDB, err := db.Open(cfg.DB, log)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	provision := service.NewProvisionService(gormDB, log)
	if opts.schema {
		if err := provision.ResetSchema(ctx); err != nil {
			return err
		}
	} else if err := db.EnsureSchema(ctx, gormDB); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	if opts.seed {
		if _, err := provision.Populate(ctx); err != nil {
			return err
		}
	}

	if opts.commission {
		caregivers := service.NewCaregiverService(repository.NewCaregiverRepository(gormDB), log)
		if _, err := caregivers.ApplyCommission(ctx); err != nil {
			return fmt.Errorf("commission: %w", err)
		}
	}

	if opts.report {
		return printReports(ctx, service.NewReportService(repository.NewReportRepository(gormDB)))
	}
	return nil
}

func printReports(ctx context.Context, reports service.ReportService) error {
	out := map[string]interface{}{}
	var err error

	if out["applicant_counts"], err = reports.ApplicantCounts(ctx); err != nil {
		return err
	}
	if out["accepted_hours"], err = reports.TotalAcceptedHours(ctx); err != nil {
		return err
	}
	if out["average_pay"], err = reports.AverageAcceptedPay(ctx); err != nil {
		return err
	}
	if out["above_average"], err = reports.AboveAverageCaregivers(ctx); err != nil {
		return err
	}
	if out["total_cost"], err = reports.TotalAcceptedCost(ctx); err != nil {
		return err
	}
	if out["accepted_names"], err = reports.AcceptedAppointmentNames(ctx); err != nil {
		return err
	}
	if out["jobs_soft_spoken"], err = reports.JobsWithRequirement(ctx, "soft-spoken"); err != nil {
		return err
	}
	if out["babysitter_hours"], err = reports.WorkHoursByCategory(ctx, model.CategoryBabysitter); err != nil {
		return err
	}
	if out["members_seeking"], err = reports.MembersSeeking(ctx, "Astana", "No pets", model.CategoryElderlyCare); err != nil {
		return err
	}
	if out["job_applications"], err = reports.JobApplications(ctx); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
