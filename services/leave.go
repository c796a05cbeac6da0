package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LeaveService struct {
	DB    *gorm.DB
	Audit AuditSinkInterface
	Now   func() time.Time
}

func NewLeaveService(db *gorm.DB, audit AuditSinkInterface) *LeaveService {
	return &LeaveService{DB: db, Audit: audit, Now: time.Now}
}

// LeaveFilter narrows List. Zero values match everything.
type LeaveFilter struct {
	Type     string
	Status   string
	PersonID uint
}

// RequestLeave loads the person, runs the leave rules and stores the updated
// counters together with the accepted request in one transaction. A
// non-empty kind restricts the lookup to that variant.
func (s *LeaveService) RequestLeave(ctx context.Context, personID uint, kind models.Kind, start, end time.Time, leaveType string) (*models.LeaveRequest, error) {
	var request *models.LeaveRequest
	today := models.DateOf(s.Now())

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ?", personID)
		if kind != "" {
			query = query.Where("person_kind = ?", kind)
		}

		var person models.Person
		if err := query.First(&person).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.EntityNotFound("employee with id %d not found", personID)
			}
			return err
		}

		days, err := person.RequestLeave(start, end, leaveType, today)
		if err != nil {
			utils.Logger.Warn("Leave request denied",
				zap.Uint("person_id", personID),
				zap.String("leave_type", leaveType),
				zap.Error(err),
			)
			return err
		}

		err = tx.Model(&person).Select("vacation_balance", "vacation_requested").Updates(map[string]interface{}{
			"vacation_balance":   person.VacationBalance,
			"vacation_requested": person.VacationRequested,
		}).Error
		if err != nil {
			return err
		}

		request = &models.LeaveRequest{
			PersonID:  person.ID,
			LeaveType: normalizeCode(leaveType),
			StartDate: models.DateOf(start),
			EndDate:   models.DateOf(end),
			Days:      days,
			Status:    models.LeaveStatusApproved,
		}
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		utils.Logger.Info("Leave request approved",
			zap.Uint("person_id", person.ID),
			zap.String("leave_request_id", request.ID.String()),
			zap.Int("days", days),
			zap.Int("vacation_balance", person.VacationBalance),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// ProcessApproval records a manager decision on a leave request. A rejection
// is stored and then returned as PermissionDenied with the notes as reason.
func (s *LeaveService) ProcessApproval(ctx context.Context, managerID uint, requestID string, approved bool, notes string) (*models.LeaveRequest, error) {
	var manager models.Person
	if err := s.DB.WithContext(ctx).First(&manager, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.EntityNotFound("manager with id %d not found", managerID)
		}
		return nil, err
	}
	if manager.Kind != models.KindManager {
		return nil, manager.ProcessApproval(requestID, approved, notes)
	}

	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, types.EntityNotFound("leave request %s not found", requestID)
	}

	var request models.LeaveRequest
	if err := s.DB.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.EntityNotFound("leave request %s not found", requestID)
		}
		return nil, err
	}

	decision := manager.ProcessApproval(requestID, approved, notes)

	now := s.Now()
	request.Status = models.LeaveStatusConfirmed
	if decision != nil {
		request.Status = models.LeaveStatusRejected
	}
	request.DecidedBy = &manager.ID
	request.DecidedAt = &now
	request.Notes = notes

	if err := s.DB.WithContext(ctx).Save(&request).Error; err != nil {
		utils.Logger.Error("Failed to record leave decision", zap.String("leave_request_id", requestID), zap.Error(err))
		return nil, err
	}

	event := AuditEvent{
		Action:         "leave_decision",
		LeaveRequestID: request.ID.String(),
		PersonID:       request.PersonID,
		ManagerID:      manager.ID,
		Status:         request.Status,
		Notes:          notes,
		At:             now,
	}
	if err := s.Audit.Record(ctx, event); err != nil {
		// The decision is already stored; a failed sink must not undo it.
		utils.Logger.Error("Failed to emit audit event", zap.String("leave_request_id", requestID), zap.Error(err))
	}

	if decision != nil {
		return &request, decision
	}
	return &request, nil
}

func (s *LeaveService) List(ctx context.Context, filter LeaveFilter) ([]models.LeaveRequest, error) {
	query := s.DB.WithContext(ctx).Model(&models.LeaveRequest{})
	if filter.Type != "" {
		query = query.Where("leave_type = ?", normalizeCode(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", normalizeCode(filter.Status))
	}
	if filter.PersonID != 0 {
		query = query.Where("person_id = ?", filter.PersonID)
	}

	var requests []models.LeaveRequest
	if err := query.Order("created_at").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *LeaveService) FindByPerson(ctx context.Context, personID uint) ([]models.LeaveRequest, error) {
	return s.List(ctx, LeaveFilter{PersonID: personID})
}

func normalizeCode(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
