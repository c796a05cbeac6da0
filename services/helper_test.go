package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"hr_payroll/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedToday = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedToday.Add(9 * time.Hour) }

// newTestDB opens a private in-memory database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestPersonService(t *testing.T) *PersonService {
	t.Helper()
	s := NewPersonService(newTestDB(t))
	s.Now = fixedNow
	return s
}

type recordingSink struct {
	mu     sync.Mutex
	events []AuditEvent
	err    error
}

func (s *recordingSink) Record(_ context.Context, event AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func intPtr(v int) *int { return &v }

func datePtr(t time.Time) *time.Time { return &t }

func amount(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func birth() time.Time { return time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC) }

func regular(nationalID string, balance, requested int) *models.Person {
	return &models.Person{
		Kind:              models.KindRegular,
		FirstName:         "Ana",
		LastName:          "Benitez",
		BirthDate:         birth(),
		NationalID:        nationalID,
		HireDate:          datePtr(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)),
		VacationBalance:   balance,
		VacationRequested: requested,
	}
}

func manager(nationalID, department string) *models.Person {
	return &models.Person{
		Kind:            models.KindManager,
		FirstName:       "Ines",
		LastName:        "Jara",
		BirthDate:       birth(),
		NationalID:      nationalID,
		HireDate:        datePtr(time.Date(2018, time.March, 1, 0, 0, 0, 0, time.UTC)),
		VacationBalance: 30,
		Department:      department,
	}
}

func fullTime(nationalID, gross, department string) *models.Person {
	return &models.Person{
		Kind:          models.KindFullTime,
		FirstName:     "Carlos",
		LastName:      "Duarte",
		BirthDate:     birth(),
		NationalID:    nationalID,
		MonthlySalary: amount(gross),
		Department:    department,
	}
}

func hourly(nationalID string, hours int) *models.Person {
	return &models.Person{
		Kind:            models.KindHourly,
		FirstName:       "Elena",
		LastName:        "Fernandez",
		BirthDate:       birth(),
		NationalID:      nationalID,
		HireDate:        datePtr(time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC)),
		VacationBalance: 10,
		HourlyRate:      amount("10000"),
		HoursWorked:     intPtr(hours),
	}
}

func contractor(nationalID string, end time.Time) *models.Person {
	return &models.Person{
		Kind:              models.KindContractor,
		FirstName:         "Gustavo",
		LastName:          "Herrera",
		BirthDate:         birth(),
		NationalID:        nationalID,
		ContractEndDate:   &end,
		AmountPerProject:  amount("2500000"),
		ProjectsCompleted: intPtr(3),
	}
}

// insertRaw stores a record without the write checks, which lets tests
// plant invalid rows.
func insertRaw(t *testing.T, db *gorm.DB, p *models.Person) {
	t.Helper()
	require.NoError(t, db.Create(p).Error)
}
