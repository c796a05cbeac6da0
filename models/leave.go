package models

import (
	"fmt"
	"strings"
	"time"

	"hr_payroll/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeaveVacation = "VACATION"
	LeaveMarriage = "MARRIAGE"

	AnnualVacationCap    = 20
	MarriageLeaveMaxDays = 4
	MinTenureYears       = 1

	DefaultRejectionReason = "Rejected by management: operational priority."
)

// DaysRequested counts calendar days from start to end, both inclusive.
// A range that ends before it starts yields zero or less.
func DaysRequested(start, end time.Time) int {
	return daysBetween(start, end) + 1
}

// CanRequestLeave reports whether the person's kind takes part in the leave engine.
func (p *Person) CanRequestLeave() bool {
	return p.behavior().leave != nil
}

// DefaultVacationBalance is the opening balance for a new leave-capable person.
func (p *Person) DefaultVacationBalance() int {
	if policy := p.behavior().leave; policy != nil {
		return policy.defaultBalance
	}
	return 0
}

// HasTenure reports whether the person has at least a year of service on today.
func (p *Person) HasTenure(today time.Time) bool {
	if p.HireDate == nil {
		return false
	}
	return yearsBetween(*p.HireDate, today) >= MinTenureYears
}

// RequestLeave runs the leave rules against the person's counters and, on
// success, updates them in place. It returns the number of days granted.
func (p *Person) RequestLeave(start, end time.Time, leaveType string, today time.Time) (int, error) {
	policy := p.behavior().leave
	if policy == nil {
		return 0, types.PermissionDenied(
			fmt.Sprintf("%s records cannot request leave", p.TypeName()),
			"employee type cannot request leave")
	}

	days := DaysRequested(start, end)
	if days <= 0 {
		return 0, types.PermissionDenied("a leave request must cover at least one day", "invalid date range")
	}

	switch strings.ToUpper(strings.TrimSpace(leaveType)) {
	case LeaveVacation:
		if !p.HasTenure(today) {
			return 0, types.PermissionDenied(
				fmt.Sprintf("vacation requires at least %d year of service", MinTenureYears),
				"insufficient tenure")
		}
		if days > p.VacationBalance {
			return 0, types.PermissionDenied(
				fmt.Sprintf("requested days (%d) exceed the available balance (%d)", days, p.VacationBalance),
				"insufficient balance")
		}
		total := p.VacationRequested + days
		if policy.annualCap && total > AnnualVacationCap {
			return 0, types.InsufficientDays(fmt.Sprintf(
				"employees may request at most %d vacation days per year, this request brings the total to %d",
				AnnualVacationCap, total))
		}
		p.VacationBalance -= days
		p.VacationRequested = total
		return days, nil

	case LeaveMarriage:
		if days <= MarriageLeaveMaxDays {
			return days, nil
		}
	}

	return 0, types.PermissionDenied(
		fmt.Sprintf("leave request of type '%s' denied, only %s and %s (up to %d days) are granted",
			leaveType, LeaveVacation, LeaveMarriage, MarriageLeaveMaxDays),
		"unsupported leave type")
}

// ProcessApproval applies a manager's decision on a leave request. A
// rejection is reported as PermissionDenied carrying the notes as reason.
func (p *Person) ProcessApproval(requestID string, approved bool, notes string) error {
	if p.Kind != KindManager {
		return types.PermissionDenied(
			fmt.Sprintf("person %d is not a manager", p.ID),
			"only managers can decide leave requests")
	}
	if approved {
		return nil
	}
	reason := strings.TrimSpace(notes)
	if reason == "" {
		reason = DefaultRejectionReason
	}
	return types.PermissionDenied(
		fmt.Sprintf("request %s was rejected by manager %s %s", requestID, p.FirstName, p.LastName),
		reason)
}

func (r *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (o *Operator) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
