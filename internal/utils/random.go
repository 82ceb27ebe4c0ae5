package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/hours"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Daniel", "Karen",
}
var commonLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Wilson", "Anderson", "Taylor",
	"Thomas", "Moore", "Jackson", "Martin", "Lee", "Thompson", "White",
}

func GenerateRandomName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var digits = "0123456789"

func GenerateUserNameFromName(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	userName := ""
	for _, part := range parts {
		length := rand.Intn(len(part)) + 1
		userName += part[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		userName += string(digits[rand.Intn(len(digits))])
	}

	return userName
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

func GenerateRandomEmployee(password string, emailDomainName string) (*domain.Employee, error) {
	name := GenerateRandomName()
	userName := GenerateUserNameFromName(name)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		UserName:     userName,
		Name:         name,
		Email:        userName + "@" + emailDomainName,
		Role:         domain.RoleUser,
		PasswordHash: string(passwordHash),
	}

	return emp, nil
}

var sampleWorkPackages = []string{"AA123", "BB456", "DESIGN", "REVIEW", "QA"}

// GenerateRandomTimesheet builds a filled-in week ending on endDate for the
// given employee. Weekends stay empty so the totals look like real entries.
func GenerateRandomTimesheet(employeeID int64, endDate time.Time) *domain.Timesheet {
	rowCount := rand.Intn(3) + 1
	rows := make([]domain.TimesheetRow, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		row := domain.TimesheetRow{
			ProjectID:     rand.Intn(900) + 100,
			WorkPackageID: sampleWorkPackages[rand.Intn(len(sampleWorkPackages))] + fmt.Sprintf("%d", i),
		}
		for d := domain.Mon; d <= domain.Fri; d++ {
			row.Hours[d] = hours.Round(float64(rand.Intn(81)) / 10)
		}
		rows = append(rows, row)
	}

	return &domain.Timesheet{
		EmployeeID: employeeID,
		EndDate:    endDate,
		Rows:       rows,
	}
}
