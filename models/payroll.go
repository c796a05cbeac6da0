package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// BaseEmployeeSalary is the fixed monthly salary of a regular employee.
	BaseEmployeeSalary = decimal.NewFromInt(5000000)
	// FullTimeMinimumSalary is the legal minimum gross salary for full-time staff.
	FullTimeMinimumSalary = decimal.NewFromInt(2899048)

	regularDeductionRate  = decimal.RequireFromString("0.15")
	fullTimeNetDiscount   = decimal.RequireFromString("0.09")
	fullTimeDeductionRate = decimal.RequireFromString("0.05")
	hourlyDeductionRate   = decimal.RequireFromString("0.02")
	overtimeMultiplier    = decimal.RequireFromString("1.5")
	managerMultiplier     = decimal.RequireFromString("1.5")
	managerDeductionRate  = decimal.RequireFromString("0.20")
	baseTaxRate           = decimal.RequireFromString("0.10")
)

const (
	RegularHoursPerPeriod = 40
	MinHoursWorked        = 1
	MaxHoursWorked        = 80
)

// behavior is the per-kind function table.
type behavior struct {
	label      string
	salary     func(p *Person) decimal.Decimal
	deductions func(p *Person) decimal.Decimal
	valid      func(p *Person, today time.Time) bool
	details    func(p *Person, today time.Time) string
	leave      *leavePolicy
}

type leavePolicy struct {
	annualCap      bool
	defaultBalance int
}

var behaviors map[Kind]behavior

// The table is filled in init because several entries call back into
// Person methods that read it.
func init() {
	behaviors = map[Kind]behavior{
		KindRegular: {
			label:      "Employee",
			salary:     func(*Person) decimal.Decimal { return round2(BaseEmployeeSalary) },
			deductions: func(p *Person) decimal.Decimal { return round2(p.Salary().Mul(regularDeductionRate)) },
			valid:      func(*Person, time.Time) bool { return true },
			details:    func(*Person, time.Time) string { return ", Role: EMPLOYEE" },
			leave:      &leavePolicy{annualCap: true, defaultBalance: 10},
		},
		KindFullTime: {
			label:      "FullTimeEmployee",
			salary:     fullTimeSalary,
			deductions: fullTimeDeductions,
			valid:      fullTimeValid,
			details:    fullTimeDetails,
		},
		KindHourly: {
			label:      "HourlyEmployee",
			salary:     hourlySalary,
			deductions: func(p *Person) decimal.Decimal { return round2(p.Salary().Mul(hourlyDeductionRate)) },
			valid:      hourlyValid,
			details:    hourlyDetails,
			leave:      &leavePolicy{annualCap: true, defaultBalance: 10},
		},
		KindContractor: {
			label:      "Contractor",
			salary:     contractorSalary,
			deductions: func(*Person) decimal.Decimal { return round2(decimal.Zero) },
			valid:      contractorValid,
			details:    contractorDetails,
		},
		KindManager: {
			label:      "Manager",
			salary:     func(*Person) decimal.Decimal { return round2(BaseEmployeeSalary.Mul(managerMultiplier)) },
			deductions: func(p *Person) decimal.Decimal { return round2(p.Salary().Mul(managerDeductionRate)) },
			valid:      func(*Person, time.Time) bool { return true },
			details: func(p *Person, _ time.Time) string {
				return fmt.Sprintf(", Role: MANAGER (%s)", p.Department)
			},
			leave: &leavePolicy{annualCap: false, defaultBalance: 30},
		},
	}
}

func (p *Person) behavior() behavior {
	b, ok := behaviors[p.Kind]
	if !ok {
		// Unknown kinds compute to zero and never validate.
		return behavior{
			label:      string(p.Kind),
			salary:     func(*Person) decimal.Decimal { return decimal.Zero },
			deductions: func(*Person) decimal.Decimal { return decimal.Zero },
			valid:      func(*Person, time.Time) bool { return false },
			details:    func(*Person, time.Time) string { return ", ERROR: unknown person kind" },
		}
	}
	return b
}

// TypeName is the human-readable variant name used in reports.
func (p *Person) TypeName() string {
	return p.behavior().label
}

// Salary is the variant's calculateSalary: net for full-time staff, gross for
// every other kind. Missing inputs yield zero.
func (p *Person) Salary() decimal.Decimal {
	return p.behavior().salary(p)
}

func (p *Person) Deductions() decimal.Decimal {
	return p.behavior().deductions(p)
}

// Tax applies the shared tax template to the variant's salary and deductions.
func (p *Person) Tax() decimal.Decimal {
	return ComputeTax(p.Salary(), p.Deductions())
}

// NetSalary is salary minus deductions.
func (p *Person) NetSalary() decimal.Decimal {
	return round2(p.Salary().Sub(p.Deductions()))
}

func (p *Person) IsValid(today time.Time) bool {
	return p.behavior().valid(p, today)
}

// FullInfo is the one-line summary shown in listings and reports.
func (p *Person) FullInfo(today time.Time) string {
	return p.baseInfo() + p.behavior().details(p, today)
}

func (p *Person) baseInfo() string {
	return fmt.Sprintf("ID: %d, First name: %s, Last name: %s, Birth date: %s, National ID: %s",
		p.ID, p.FirstName, p.LastName, FormatDate(p.BirthDate), p.NationalID)
}

// ComputeTax is the fixed tax template: taxable income (never negative)
// minus a 10% base tax on the salary, rounded half-up to 2 places.
func ComputeTax(salary, deductions decimal.Decimal) decimal.Decimal {
	taxable := salary.Sub(deductions)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	baseTax := round2(salary.Mul(baseTaxRate))
	return round2(taxable.Sub(baseTax))
}

// round2 rounds half away from zero, which matches half-up for money.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func fullTimeSalary(p *Person) decimal.Decimal {
	if !p.MonthlySalary.Valid {
		return decimal.Zero
	}
	gross := p.MonthlySalary.Decimal
	return round2(gross.Sub(gross.Mul(fullTimeNetDiscount)))
}

func fullTimeDeductions(p *Person) decimal.Decimal {
	if !p.MonthlySalary.Valid || !p.MonthlySalary.Decimal.IsPositive() {
		return decimal.Zero
	}
	return round2(p.MonthlySalary.Decimal.Mul(fullTimeDeductionRate))
}

func fullTimeValid(p *Person, _ time.Time) bool {
	if !p.MonthlySalary.Valid || p.MonthlySalary.Decimal.LessThan(FullTimeMinimumSalary) {
		return false
	}
	return strings.TrimSpace(p.Department) != ""
}

func fullTimeDetails(p *Person, today time.Time) string {
	department := strings.TrimSpace(p.Department)
	if department == "" {
		department = "N/A"
	}
	gross := "N/A"
	if p.MonthlySalary.Valid {
		gross = round2(p.MonthlySalary.Decimal).StringFixed(2)
	}
	if !p.IsValid(today) {
		return fmt.Sprintf(", ERROR: invalid employee data (minimum salary or department). Department: %s, Gross monthly salary: %s",
			department, gross)
	}
	return fmt.Sprintf(", Department: %s, Gross monthly salary: %s, Net salary (9%%): %s, Deductions (5%%): %s, Tax: %s",
		department, gross, p.Salary().StringFixed(2), p.Deductions().StringFixed(2), p.Tax().StringFixed(2))
}

func hourlySalary(p *Person) decimal.Decimal {
	if p.HoursWorked == nil || *p.HoursWorked <= 0 || !p.HourlyRate.Valid {
		return round2(decimal.Zero)
	}
	hours := *p.HoursWorked
	rate := p.HourlyRate.Decimal

	regular := hours
	if regular > RegularHoursPerPeriod {
		regular = RegularHoursPerPeriod
	}
	total := rate.Mul(decimal.NewFromInt(int64(regular)))
	if hours > RegularHoursPerPeriod {
		overtime := decimal.NewFromInt(int64(hours - RegularHoursPerPeriod))
		total = total.Add(rate.Mul(overtimeMultiplier).Mul(overtime))
	}
	return round2(total)
}

func hourlyValid(p *Person, _ time.Time) bool {
	if !p.HourlyRate.Valid || !p.HourlyRate.Decimal.IsPositive() {
		return false
	}
	return p.HoursWorked != nil && *p.HoursWorked >= MinHoursWorked && *p.HoursWorked <= MaxHoursWorked
}

func hourlyDetails(p *Person, today time.Time) string {
	if !p.IsValid(today) {
		return ", ERROR: invalid employee data."
	}
	return fmt.Sprintf(", Type: Hourly, Rate: %s, Hours worked: %d, Total salary: %s, Tax: %s",
		p.HourlyRate.Decimal.String(), *p.HoursWorked, p.Salary().StringFixed(2), p.Tax().StringFixed(2))
}

func contractorSalary(p *Person) decimal.Decimal {
	if p.ProjectsCompleted == nil || !p.AmountPerProject.Valid {
		return decimal.Zero
	}
	return round2(p.AmountPerProject.Decimal.Mul(decimal.NewFromInt(int64(*p.ProjectsCompleted))))
}

func contractorValid(p *Person, today time.Time) bool {
	if !p.AmountPerProject.Valid || !p.AmountPerProject.Decimal.IsPositive() {
		return false
	}
	if p.ProjectsCompleted == nil || *p.ProjectsCompleted < 0 {
		return false
	}
	return p.ContractActive(today)
}

// ContractActive reports whether the contract end date is strictly after today.
func (p *Person) ContractActive(today time.Time) bool {
	return p.ContractEndDate != nil && DateOf(*p.ContractEndDate).After(DateOf(today))
}

func contractorDetails(p *Person, today time.Time) string {
	if !p.IsValid(today) {
		return ", ERROR: invalid contractor data."
	}
	return fmt.Sprintf(", Type: Contractor, Amount per project: %s, Projects completed: %d, Contract end: %s, Active: %t, Tax: %s",
		p.AmountPerProject.Decimal.String(), *p.ProjectsCompleted, FormatDate(*p.ContractEndDate),
		p.ContractActive(today), p.Tax().StringFixed(2))
}
