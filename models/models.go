package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the discriminator stored in persons.person_kind.
type Kind string

const (
	KindRegular    Kind = "REGULAR"
	KindFullTime   Kind = "FULL_TIME"
	KindHourly     Kind = "HOURLY"
	KindContractor Kind = "CONTRACTOR"
	KindManager    Kind = "MANAGER"
)

// Kinds lists every variant in reporting order.
var Kinds = []Kind{KindRegular, KindFullTime, KindHourly, KindContractor, KindManager}

func (k Kind) Valid() bool {
	_, ok := behaviors[k]
	return ok
}

// Person is one row of the single persons table. Columns that do not apply to
// a kind stay NULL.
type Person struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Kind       Kind      `gorm:"column:person_kind;type:varchar(20);not null;index" json:"kind"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	BirthDate  time.Time `gorm:"type:date;not null" json:"birth_date"`
	NationalID string    `gorm:"size:20;uniqueIndex;not null" json:"national_id"`

	HireDate          *time.Time `gorm:"type:date" json:"hire_date,omitempty"`
	VacationBalance   int        `gorm:"not null;default:0" json:"vacation_balance"`
	VacationRequested int        `gorm:"not null;default:0" json:"vacation_requested"`
	ContractEndDate   *time.Time `gorm:"type:date;index" json:"contract_end_date,omitempty"`

	MonthlySalary decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"monthly_salary"`
	Department    string              `gorm:"size:50;index" json:"department,omitempty"`

	HourlyRate  decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"hourly_rate"`
	HoursWorked *int                `json:"hours_worked,omitempty"`

	AmountPerProject  decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"amount_per_project"`
	ProjectsCompleted *int                `json:"projects_completed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Person) TableName() string { return "persons" }

const (
	LeaveStatusApproved  = "APPROVED"
	LeaveStatusConfirmed = "CONFIRMED"
	LeaveStatusRejected  = "REJECTED"
)

// LeaveRequest records a leave request accepted by the leave engine and the
// manager decision taken on it afterwards.
type LeaveRequest struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	PersonID  uint       `gorm:"not null;index" json:"person_id"`
	LeaveType string     `gorm:"size:20;not null" json:"leave_type"`
	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time  `gorm:"type:date;not null" json:"end_date"`
	Days      int        `gorm:"not null" json:"days"`
	Status    string     `gorm:"size:20;not null;default:'APPROVED'" json:"status"`
	DecidedBy *uint      `json:"decided_by,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleHR      = "hr"
)

// Operator is an API account, not an employee.
type Operator struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `gorm:"not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// All returns every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{&Person{}, &LeaveRequest{}, &Operator{}}
}
