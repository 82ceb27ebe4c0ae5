package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/config"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/repository"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/seed"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var weeks int
	var employeeID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random employees, 2: insert timesheet history for one employee, 3: seed full demo data)")
	flag.IntVar(&n, "n", 5, "number of employees to insert")
	flag.IntVar(&weeks, "weeks", 4, "number of weeks of timesheet history per employee")
	flag.Int64Var(&employeeID, "employee-id", 0, "employee to insert timesheet history for")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, it does not connect, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please give a valid employee count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				emp, err := utils.GenerateRandomEmployee(cfg.Seed.Employee.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("unable to generate random employee", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateEmployee(emp); err != nil {
					slog.Error("unable to insert employee", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("employees inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if employeeID <= 0 {
			slog.Error("please give a valid employee ID")
			return
		}

		emp, err := repo.GetEmployeeByID(employeeID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("the given employee does not exist", slog.Int64("employee_id", employeeID))
			default:
				slog.Error("unable to load employee", slog.String("error", err.Error()))
			}
			return
		}

		if err := seed.SeedTimesheetHistory(repo, emp.ID, weeks); err != nil {
			slog.Error("unable to seed timesheet history", slog.String("error", err.Error()))
			return
		}

		slog.Info("timesheet history inserted", slog.String("user_name", emp.UserName), slog.Int("weeks", weeks))
	case 3:
		seed.SeedDemoData(cfg, repo, n, weeks)
	default:
		slog.Error("invalid operation")
	}
}
