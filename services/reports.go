package services

import (
	"context"
	"time"

	"hr_payroll/models"
	"hr_payroll/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DayCounter selects which vacation counter a report reads.
type DayCounter int

const (
	AvailableDays DayCounter = iota
	RequestedDays
)

func (c DayCounter) of(p *models.Person) int {
	if c == RequestedDays {
		return p.VacationRequested
	}
	return p.VacationBalance
}

type ReportService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, Now: time.Now}
}

type EmployeeDays struct {
	ID           uint   `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	NationalID   string `json:"national_id"`
	Days         int    `json:"days"`
	EmployeeType string `json:"employee_type"`
	FullInfo     string `json:"full_info"`
}

type VacationStats struct {
	TotalEmployees int             `json:"total_employees"`
	TotalDays      int             `json:"total_days"`
	AverageDays    decimal.Decimal `json:"average_days"`
	MaxDays        int             `json:"max_days"`
	MinDays        int             `json:"min_days"`
}

type EmployeeVacation struct {
	ID            uint   `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	NationalID    string `json:"national_id"`
	EmployeeType  string `json:"employee_type"`
	AvailableDays int    `json:"available_days"`
	RequestedDays int    `json:"requested_days"`
}

type FullReport struct {
	GeneratedAt        time.Time          `json:"generated_at"`
	TotalEmployees     int                `json:"total_employees"`
	TotalAvailableDays int                `json:"total_available_days"`
	TotalRequestedDays int                `json:"total_requested_days"`
	Employees          []EmployeeVacation `json:"employees"`
}

// employees loads every leave-capable person.
func (s *ReportService) employees(ctx context.Context) ([]models.Person, error) {
	var leaveKinds []models.Kind
	for _, kind := range models.Kinds {
		probe := models.Person{Kind: kind}
		if probe.CanRequestLeave() {
			leaveKinds = append(leaveKinds, kind)
		}
	}

	var persons []models.Person
	err := s.DB.WithContext(ctx).
		Where("person_kind IN ?", leaveKinds).
		Order("id").
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

// TotalDays sums counter over every employee.
func (s *ReportService) TotalDays(ctx context.Context, counter DayCounter) (int, error) {
	persons, err := s.employees(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for i := range persons {
		total += counter.of(&persons[i])
	}
	utils.Logger.Debug("Computed vacation total", zap.Int("counter", int(counter)), zap.Int("total", total))
	return total, nil
}

// EmployeesAbove lists employees whose counter is strictly greater than threshold.
func (s *ReportService) EmployeesAbove(ctx context.Context, counter DayCounter, threshold int) ([]EmployeeDays, error) {
	persons, err := s.employees(ctx)
	if err != nil {
		return nil, err
	}

	today := models.DateOf(s.Now())
	result := make([]EmployeeDays, 0)
	for i := range persons {
		p := &persons[i]
		days := counter.of(p)
		if days <= threshold {
			continue
		}
		result = append(result, EmployeeDays{
			ID:           p.ID,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			NationalID:   p.NationalID,
			Days:         days,
			EmployeeType: p.TypeName(),
			FullInfo:     p.FullInfo(today),
		})
	}
	return result, nil
}

// VacationStats summarises available days. ok is false when there are no
// employees.
func (s *ReportService) VacationStats(ctx context.Context) (stats VacationStats, ok bool, err error) {
	persons, err := s.employees(ctx)
	if err != nil {
		return VacationStats{}, false, err
	}
	stats, ok = ComputeVacationStats(persons)
	return stats, ok, nil
}

// ComputeVacationStats aggregates the available-days counter of persons.
func ComputeVacationStats(persons []models.Person) (VacationStats, bool) {
	if len(persons) == 0 {
		return VacationStats{}, false
	}

	stats := VacationStats{
		TotalEmployees: len(persons),
		MaxDays:        persons[0].VacationBalance,
		MinDays:        persons[0].VacationBalance,
	}
	for _, p := range persons {
		stats.TotalDays += p.VacationBalance
		if p.VacationBalance > stats.MaxDays {
			stats.MaxDays = p.VacationBalance
		}
		if p.VacationBalance < stats.MinDays {
			stats.MinDays = p.VacationBalance
		}
	}
	stats.AverageDays = decimal.NewFromInt(int64(stats.TotalDays)).
		Div(decimal.NewFromInt(int64(stats.TotalEmployees))).
		Round(2)
	return stats, true
}

func (s *ReportService) FullReport(ctx context.Context) (*FullReport, error) {
	persons, err := s.employees(ctx)
	if err != nil {
		return nil, err
	}

	report := &FullReport{
		GeneratedAt:    s.Now(),
		TotalEmployees: len(persons),
		Employees:      make([]EmployeeVacation, 0, len(persons)),
	}
	for i := range persons {
		p := &persons[i]
		report.TotalAvailableDays += p.VacationBalance
		report.TotalRequestedDays += p.VacationRequested
		report.Employees = append(report.Employees, EmployeeVacation{
			ID:            p.ID,
			FirstName:     p.FirstName,
			LastName:      p.LastName,
			NationalID:    p.NationalID,
			EmployeeType:  p.TypeName(),
			AvailableDays: p.VacationBalance,
			RequestedDays: p.VacationRequested,
		})
	}
	return report, nil
}
