package handlers

import (
	"strings"
	"time"

	"hr_payroll/models"

	"github.com/shopspring/decimal"
)

// PersonRequest is the body accepted by every create and update route.
// Kind is only read by /api/persons; the per-kind routes fix it.
type PersonRequest struct {
	Kind              string              `json:"kind" validate:"omitempty,person_kind"`
	FirstName         string              `json:"first_name" validate:"required,max=100"`
	LastName          string              `json:"last_name" validate:"required,max=100"`
	BirthDate         string              `json:"birth_date" validate:"required,date"`
	NationalID        string              `json:"national_id" validate:"required,national_id"`
	HireDate          string              `json:"hire_date" validate:"omitempty,date"`
	VacationBalance   *int                `json:"vacation_balance" validate:"omitempty,min=0"`
	VacationRequested *int                `json:"vacation_requested" validate:"omitempty,min=0"`
	ContractEndDate   string              `json:"contract_end_date" validate:"omitempty,date"`
	MonthlySalary     decimal.NullDecimal `json:"monthly_salary"`
	Department        string              `json:"department" validate:"max=50"`
	HourlyRate        decimal.NullDecimal `json:"hourly_rate"`
	HoursWorked       *int                `json:"hours_worked"`
	AmountPerProject  decimal.NullDecimal `json:"amount_per_project"`
	ProjectsCompleted *int                `json:"projects_completed"`
}

// ToPerson builds a new record of kind. Leave-capable kinds start with
// their default balance unless the request sets one.
func (r *PersonRequest) ToPerson(kind models.Kind) *models.Person {
	p := &models.Person{Kind: kind}
	r.ApplyTo(p)
	if r.VacationBalance == nil {
		p.VacationBalance = p.DefaultVacationBalance()
	}
	return p
}

// ApplyTo copies the request onto p. Omitted counters and hire date keep
// their stored values. The caller has already validated the dates.
func (r *PersonRequest) ApplyTo(p *models.Person) {
	p.FirstName = strings.TrimSpace(r.FirstName)
	p.LastName = strings.TrimSpace(r.LastName)
	p.BirthDate, _ = models.ParseDate(r.BirthDate)
	p.NationalID = strings.TrimSpace(r.NationalID)

	if hire := optionalDate(r.HireDate); hire != nil {
		p.HireDate = hire
	}
	if r.VacationBalance != nil {
		p.VacationBalance = *r.VacationBalance
	}
	if r.VacationRequested != nil {
		p.VacationRequested = *r.VacationRequested
	}

	p.ContractEndDate = optionalDate(r.ContractEndDate)
	p.MonthlySalary = r.MonthlySalary
	p.Department = strings.TrimSpace(r.Department)
	p.HourlyRate = r.HourlyRate
	p.HoursWorked = r.HoursWorked
	p.AmountPerProject = r.AmountPerProject
	p.ProjectsCompleted = r.ProjectsCompleted
}

func optionalDate(value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, err := models.ParseDate(value)
	if err != nil {
		return nil
	}
	return &t
}

type PersonResponse struct {
	ID                uint        `json:"id"`
	Kind              models.Kind `json:"kind"`
	EmployeeType      string      `json:"employee_type"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	BirthDate         string      `json:"birth_date"`
	NationalID        string      `json:"national_id"`
	HireDate          string      `json:"hire_date,omitempty"`
	VacationBalance   *int        `json:"vacation_balance,omitempty"`
	VacationRequested *int        `json:"vacation_requested,omitempty"`
	ContractEndDate   string      `json:"contract_end_date,omitempty"`
	MonthlySalary     string      `json:"monthly_salary,omitempty"`
	Department        string      `json:"department,omitempty"`
	HourlyRate        string      `json:"hourly_rate,omitempty"`
	HoursWorked       *int        `json:"hours_worked,omitempty"`
	AmountPerProject  string      `json:"amount_per_project,omitempty"`
	ProjectsCompleted *int        `json:"projects_completed,omitempty"`
	Salary            string      `json:"salary"`
	Deductions        string      `json:"deductions"`
	NetSalary         string      `json:"net_salary"`
	Tax               string      `json:"tax"`
	Valid             bool        `json:"valid"`
	FullInfo          string      `json:"full_info"`
}

func NewPersonResponse(p *models.Person, today time.Time) PersonResponse {
	resp := PersonResponse{
		ID:                p.ID,
		Kind:              p.Kind,
		EmployeeType:      p.TypeName(),
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		BirthDate:         models.FormatDate(p.BirthDate),
		NationalID:        p.NationalID,
		MonthlySalary:     money(p.MonthlySalary),
		Department:        p.Department,
		HourlyRate:        money(p.HourlyRate),
		HoursWorked:       p.HoursWorked,
		AmountPerProject:  money(p.AmountPerProject),
		ProjectsCompleted: p.ProjectsCompleted,
		Salary:            p.Salary().StringFixed(2),
		Deductions:        p.Deductions().StringFixed(2),
		NetSalary:         p.NetSalary().StringFixed(2),
		Tax:               p.Tax().StringFixed(2),
		Valid:             p.IsValid(today),
		FullInfo:          p.FullInfo(today),
	}
	if p.HireDate != nil {
		resp.HireDate = models.FormatDate(*p.HireDate)
	}
	if p.ContractEndDate != nil {
		resp.ContractEndDate = models.FormatDate(*p.ContractEndDate)
	}
	if p.CanRequestLeave() {
		balance, requested := p.VacationBalance, p.VacationRequested
		resp.VacationBalance = &balance
		resp.VacationRequested = &requested
	}
	return resp
}

func NewPersonResponses(persons []models.Person, today time.Time) []PersonResponse {
	result := make([]PersonResponse, 0, len(persons))
	for i := range persons {
		result = append(result, NewPersonResponse(&persons[i], today))
	}
	return result
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

type LeaveRequestBody struct {
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
	LeaveType string `json:"leave_type" validate:"required"`
}

type LeaveRequestResponse struct {
	ID        string     `json:"id"`
	PersonID  uint       `json:"person_id"`
	LeaveType string     `json:"leave_type"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Days      int        `json:"days"`
	Status    string     `json:"status"`
	DecidedBy *uint      `json:"decided_by,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewLeaveRequestResponse(r *models.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:        r.ID.String(),
		PersonID:  r.PersonID,
		LeaveType: r.LeaveType,
		StartDate: models.FormatDate(r.StartDate),
		EndDate:   models.FormatDate(r.EndDate),
		Days:      r.Days,
		Status:    r.Status,
		DecidedBy: r.DecidedBy,
		Notes:     r.Notes,
		DecidedAt: r.DecidedAt,
		CreatedAt: r.CreatedAt,
	}
}
