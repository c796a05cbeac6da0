package services

import (
	"context"
	"errors"
	"time"

	"hr_payroll/models"
	"hr_payroll/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureOperator creates the operator if the username is free. An existing
// account is left untouched.
func EnsureOperator(ctx context.Context, db *gorm.DB, username, password, role string) (*models.Operator, error) {
	var existing models.Operator
	err := db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	operator := &models.Operator{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.WithContext(ctx).Create(operator).Error; err != nil {
		return nil, err
	}

	utils.Logger.Info("Operator created", zap.String("username", username), zap.String("role", role))
	return operator, nil
}

// SeedDemoData inserts one person of every kind when the table is empty.
func SeedDemoData(ctx context.Context, persons *PersonService) error {
	var count int64
	if err := persons.DB.WithContext(ctx).Model(&models.Person{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	today := models.DateOf(persons.Now())
	hired := today.AddDate(-3, 0, 0)
	contractEnd := today.AddDate(1, 0, 0)
	hours := 45
	projects := 3

	demo := []models.Person{
		{
			Kind:            models.KindRegular,
			FirstName:       "Ana",
			LastName:        "Benitez",
			BirthDate:       date(1990, time.January, 15),
			NationalID:      "1234567",
			HireDate:        &hired,
			VacationBalance: 10,
		},
		{
			Kind:          models.KindFullTime,
			FirstName:     "Carlos",
			LastName:      "Duarte",
			BirthDate:     date(1985, time.August, 10),
			NationalID:    "2345678",
			MonthlySalary: decimal.NewNullDecimal(decimal.NewFromInt(6000000)),
			Department:    "Engineering",
		},
		{
			Kind:            models.KindHourly,
			FirstName:       "Elena",
			LastName:        "Fernandez",
			BirthDate:       date(1998, time.November, 5),
			NationalID:      "3456789",
			HireDate:        &hired,
			VacationBalance: 10,
			HourlyRate:      decimal.NewNullDecimal(decimal.NewFromInt(50000)),
			HoursWorked:     &hours,
		},
		{
			Kind:              models.KindContractor,
			FirstName:         "Gustavo",
			LastName:          "Herrera",
			BirthDate:         date(1979, time.March, 20),
			NationalID:        "4567890",
			ContractEndDate:   &contractEnd,
			AmountPerProject:  decimal.NewNullDecimal(decimal.NewFromInt(2500000)),
			ProjectsCompleted: &projects,
		},
		{
			Kind:            models.KindManager,
			FirstName:       "Ines",
			LastName:        "Jara",
			BirthDate:       date(1980, time.May, 2),
			NationalID:      "5678901",
			HireDate:        &hired,
			VacationBalance: 30,
			Department:      "Engineering",
		},
	}

	for i := range demo {
		if err := persons.Create(ctx, &demo[i]); err != nil {
			return err
		}
	}
	utils.Logger.Info("Demo data seeded", zap.Int("persons", len(demo)))
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
