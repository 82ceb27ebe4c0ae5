package seed

import (
	"log/slog"
	"time"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/config"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/period"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/repository"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/utils"
)

// SeedDemoData fills an empty database with a plausible demo state:
// random employees, each with the current week plus a few weeks of
// history. All seeded accounts share the configured seed password.
func SeedDemoData(cfg *config.Config, repo *repository.Repository, employees int, weeks int) {
	inserted := 0
	for i := 0; i < employees; i++ {
		emp, err := utils.GenerateRandomEmployee(cfg.Seed.Employee.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("unable to generate random employee", slog.String("error", err.Error()))
			continue
		}

		if err := repo.CreateEmployee(emp); err != nil {
			slog.Error("unable to insert employee", slog.String("error", err.Error()))
			continue
		}
		inserted++

		if err := SeedTimesheetHistory(repo, emp.ID, weeks); err != nil {
			slog.Error("unable to seed timesheet history",
				slog.String("user_name", emp.UserName),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.Info("demo data seeded", slog.Int("employees", inserted), slog.Int("weeks_each", weeks))
}

// SeedTimesheetHistory inserts the current week and weeks-1 past weeks for
// one employee. Weeks are keyed by their Friday, walking backwards from the
// current one.
func SeedTimesheetHistory(repo *repository.Repository, employeeID int64, weeks int) error {
	friday := period.Friday(time.Now())
	for w := 0; w < weeks; w++ {
		ts := utils.GenerateRandomTimesheet(employeeID, friday.AddDate(0, 0, -7*w))
		if err := repo.SaveTimesheet(ts); err != nil {
			return err
		}
	}

	return nil
}
