package services

import (
	"context"
	"strings"
	"time"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PayrollService struct {
	DB      *gorm.DB
	Persons *PersonService
	Now     func() time.Time
}

func NewPayrollService(db *gorm.DB, persons *PersonService) *PayrollService {
	return &PayrollService{DB: db, Persons: persons, Now: time.Now}
}

func (s *PayrollService) today() time.Time {
	return models.DateOf(s.Now())
}

// SalarySummary is the computed pay of one person.
type SalarySummary struct {
	PersonID   uint            `json:"person_id"`
	Kind       models.Kind     `json:"kind"`
	Salary     decimal.Decimal `json:"salary"`
	Deductions decimal.Decimal `json:"deductions"`
	NetSalary  decimal.Decimal `json:"net_salary"`
	Tax        decimal.Decimal `json:"tax"`
	Valid      bool            `json:"valid"`
}

// PayrollLine is one entry of the polymorphic payroll report.
type PayrollLine struct {
	ID           uint            `json:"id"`
	Kind         models.Kind     `json:"kind"`
	EmployeeType string          `json:"employee_type"`
	FullInfo     string          `json:"full_info"`
	Valid        bool            `json:"valid"`
	Tax          decimal.Decimal `json:"tax"`
}

type DepartmentPayroll struct {
	ManagerID  uint            `json:"manager_id"`
	Department string          `json:"department"`
	Headcount  int             `json:"headcount"`
	Total      decimal.Decimal `json:"total"`
}

// SumValidSalaries adds Salary() over the valid records and logs every
// record it leaves out.
func SumValidSalaries(persons []models.Person, today time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range persons {
		p := &persons[i]
		if !p.IsValid(today) {
			utils.Logger.Warn("Excluding invalid record from payroll",
				zap.Uint("id", p.ID),
				zap.String("kind", string(p.Kind)),
			)
			continue
		}
		total = total.Add(p.Salary())
	}
	return total.Round(2)
}

// TotalsByKind returns the payroll total of every kind, zero for kinds with
// no valid records.
func (s *PayrollService) TotalsByKind(ctx context.Context) (map[models.Kind]decimal.Decimal, error) {
	persons, err := s.Persons.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[models.Kind][]models.Person, len(models.Kinds))
	for _, p := range persons {
		grouped[p.Kind] = append(grouped[p.Kind], p)
	}

	today := s.today()
	totals := make(map[models.Kind]decimal.Decimal, len(models.Kinds))
	for _, kind := range models.Kinds {
		totals[kind] = SumValidSalaries(grouped[kind], today)
	}
	return totals, nil
}

func (s *PayrollService) KindTotal(ctx context.Context, kind models.Kind) (decimal.Decimal, error) {
	persons, err := s.Persons.FindByKind(ctx, kind)
	if err != nil {
		return decimal.Zero, err
	}
	return SumValidSalaries(persons, s.today()), nil
}

// Summary computes the pay figures of one person regardless of validity.
func (s *PayrollService) Summary(ctx context.Context, id uint, kind models.Kind) (*SalarySummary, error) {
	person, err := s.Persons.FindByID(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	return summarize(person, s.today()), nil
}

// NetSalary is only defined for valid records.
func (s *PayrollService) NetSalary(ctx context.Context, id uint, kind models.Kind) (*SalarySummary, error) {
	summary, err := s.Summary(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	if !summary.Valid {
		return nil, types.ValidationFailed("person %d has invalid payroll data, net salary is not available", id)
	}
	return summary, nil
}

// DepartmentPayroll sums the salaries of the valid full-time employees and
// managers in the manager's department.
func (s *PayrollService) DepartmentPayroll(ctx context.Context, managerID uint) (*DepartmentPayroll, error) {
	manager, err := s.Persons.FindByID(ctx, managerID, models.KindManager)
	if err != nil {
		return nil, err
	}
	if manager.Department == "" {
		return nil, types.ValidationFailed("manager %d has no department", managerID)
	}

	var members []models.Person
	err = s.DB.WithContext(ctx).
		Where("person_kind IN ? AND LOWER(department) = ?",
			[]models.Kind{models.KindFullTime, models.KindManager}, strings.ToLower(manager.Department)).
		Order("id").
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	today := s.today()
	headcount := 0
	for i := range members {
		if members[i].IsValid(today) {
			headcount++
		}
	}

	return &DepartmentPayroll{
		ManagerID:  manager.ID,
		Department: manager.Department,
		Headcount:  headcount,
		Total:      SumValidSalaries(members, today),
	}, nil
}

// PayrollReport lists every person with kind, summary, validity and tax.
func (s *PayrollService) PayrollReport(ctx context.Context) ([]PayrollLine, error) {
	persons, err := s.Persons.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	lines := make([]PayrollLine, 0, len(persons))
	for i := range persons {
		p := &persons[i]
		lines = append(lines, PayrollLine{
			ID:           p.ID,
			Kind:         p.Kind,
			EmployeeType: p.TypeName(),
			FullInfo:     p.FullInfo(today),
			Valid:        p.IsValid(today),
			Tax:          p.Tax(),
		})
	}
	return lines, nil
}

func summarize(p *models.Person, today time.Time) *SalarySummary {
	return &SalarySummary{
		PersonID:   p.ID,
		Kind:       p.Kind,
		Salary:     p.Salary(),
		Deductions: p.Deductions(),
		NetSalary:  p.NetSalary(),
		Tax:        p.Tax(),
		Valid:      p.IsValid(today),
	}
}
