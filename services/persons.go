package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BatchSize is the number of records inserted per transaction by CreateBatch.
const BatchSize = 100

type PersonService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewPersonService(db *gorm.DB) *PersonService {
	return &PersonService{DB: db, Now: time.Now}
}

func (s *PersonService) today() time.Time {
	return models.DateOf(s.Now())
}

func (s *PersonService) FindAll(ctx context.Context) ([]models.Person, error) {
	var persons []models.Person
	if err := s.DB.WithContext(ctx).Order("id").Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *PersonService) FindByKind(ctx context.Context, kind models.Kind) ([]models.Person, error) {
	var persons []models.Person
	err := s.DB.WithContext(ctx).
		Where("person_kind = ?", kind).
		Order("id").
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

// FindByID loads a person. A non-empty kind restricts the lookup to that
// variant, so a manager id requested under /employees is not found.
func (s *PersonService) FindByID(ctx context.Context, id uint, kind models.Kind) (*models.Person, error) {
	query := s.DB.WithContext(ctx).Where("id = ?", id)
	if kind != "" {
		query = query.Where("person_kind = ?", kind)
	}

	var person models.Person
	if err := query.First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if kind != "" {
				return nil, types.EntityNotFound("%s with id %d not found", strings.ToLower(string(kind)), id)
			}
			return nil, types.EntityNotFound("person with id %d not found", id)
		}
		return nil, err
	}
	return &person, nil
}

// SearchByName matches first or last name case-insensitively. A blank
// name returns everyone.
func (s *PersonService) SearchByName(ctx context.Context, name string) ([]models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.FindAll(ctx)
	}

	pattern := "%" + strings.ToLower(name) + "%"
	var persons []models.Person
	err := s.DB.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern).
		Order("id").
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *PersonService) FindFullTimeByDepartment(ctx context.Context, department string) ([]models.Person, error) {
	var persons []models.Person
	err := s.DB.WithContext(ctx).
		Where("person_kind = ? AND LOWER(department) = ?", models.KindFullTime, strings.ToLower(strings.TrimSpace(department))).
		Order("id").
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *PersonService) FindHourlyWithMoreHoursThan(ctx context.Context, hours int) ([]models.Person, error) {
	var persons []models.Person
	err := s.DB.WithContext(ctx).
		Where("person_kind = ? AND hours_worked > ?", models.KindHourly, hours).
		Order("id").
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

// FindActiveContracts returns persons of kind whose contract ends strictly
// after today.
func (s *PersonService) FindActiveContracts(ctx context.Context, kind models.Kind) ([]models.Person, error) {
	candidates, err := s.FindByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	today := s.today()
	active := make([]models.Person, 0, len(candidates))
	for _, p := range candidates {
		if p.ContractActive(today) {
			active = append(active, p)
		}
	}
	return active, nil
}

// ExistsByNationalID ignores the person with excludeID, which lets updates
// keep their own national ID.
func (s *PersonService) ExistsByNationalID(ctx context.Context, nationalID string, excludeID uint) (bool, error) {
	var count int64
	query := s.DB.WithContext(ctx).Model(&models.Person{}).Where("national_id = ?", nationalID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create fills employee defaults and stores a new person after the full
// set of write checks.
func (s *PersonService) Create(ctx context.Context, person *models.Person) error {
	if !person.Kind.Valid() {
		return types.ValidationFailed("unknown person kind %q", person.Kind)
	}

	today := s.today()
	if person.CanRequestLeave() && person.HireDate == nil {
		person.HireDate = &today
	}

	if err := s.checkWritable(ctx, person, 0, today); err != nil {
		return err
	}

	if err := s.DB.WithContext(ctx).Create(person).Error; err != nil {
		utils.Logger.Error("Failed to create person", zap.String("national_id", person.NationalID), zap.Error(err))
		return err
	}

	utils.Logger.Info("Person created",
		zap.Uint("id", person.ID),
		zap.String("kind", string(person.Kind)),
		zap.Int("vacation_balance", person.VacationBalance),
	)
	return nil
}

// Update loads the person, lets apply change it and saves the result. The
// id and kind of the stored record never change.
func (s *PersonService) Update(ctx context.Context, id uint, kind models.Kind, apply func(p *models.Person)) (*models.Person, error) {
	person, err := s.FindByID(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	storedKind := person.Kind
	apply(person)
	person.ID = id
	person.Kind = storedKind

	if err := s.checkWritable(ctx, person, id, s.today()); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Save(person).Error; err != nil {
		utils.Logger.Error("Failed to update person", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return person, nil
}

func (s *PersonService) Delete(ctx context.Context, id uint, kind models.Kind) error {
	person, err := s.FindByID(ctx, id, kind)
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_id = ?", person.ID).Delete(&models.LeaveRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(person).Error
	})
}

// CreateBatch validates every record up front and then inserts them in
// transactions of BatchSize records. Records must all be of kind.
func (s *PersonService) CreateBatch(ctx context.Context, kind models.Kind, persons []models.Person) error {
	if len(persons) == 0 {
		return types.ValidationFailed("batch is empty")
	}

	today := s.today()
	seen := make(map[string]int, len(persons))
	for i := range persons {
		p := &persons[i]
		if p.Kind != kind {
			return types.ValidationFailed("record %d: expected kind %s, got %s", i, kind, p.Kind)
		}
		if first, dup := seen[p.NationalID]; dup {
			return types.ValidationFailed("record %d: national ID %s repeats record %d", i, p.NationalID, first)
		}
		seen[p.NationalID] = i

		if p.CanRequestLeave() && p.HireDate == nil {
			p.HireDate = &today
		}
		if err := s.checkWritable(ctx, p, 0, today); err != nil {
			return types.Prefix(err, "record %d", i)
		}
	}

	for start := 0; start < len(persons); start += BatchSize {
		end := start + BatchSize
		if end > len(persons) {
			end = len(persons)
		}
		chunk := persons[start:end]

		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(&chunk).Error
		})
		if err != nil {
			utils.Logger.Error("Failed to insert batch", zap.Int("offset", start), zap.Int("size", len(chunk)), zap.Error(err))
			return err
		}
		utils.Logger.Info("Batch inserted", zap.String("kind", string(kind)), zap.Int("offset", start), zap.Int("size", len(chunk)))
	}
	return nil
}

func (s *PersonService) checkWritable(ctx context.Context, person *models.Person, excludeID uint, today time.Time) error {
	if models.DateOf(person.BirthDate).After(today) {
		return types.InvalidBirthDate(fmt.Sprintf("birth date %s is in the future", models.FormatDate(person.BirthDate)))
	}

	if !person.IsValid(today) {
		utils.Logger.Warn("Rejected invalid person data",
			zap.String("kind", string(person.Kind)),
			zap.String("national_id", person.NationalID),
		)
		return types.ValidationFailed("invalid %s data: %s", person.TypeName(), invalidReason(person))
	}

	exists, err := s.ExistsByNationalID(ctx, person.NationalID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return types.ValidationFailed("national ID %s is already registered", person.NationalID)
	}
	return nil
}

func invalidReason(p *models.Person) string {
	switch p.Kind {
	case models.KindFullTime:
		return fmt.Sprintf("gross salary must be at least %s and department is required", models.FullTimeMinimumSalary.String())
	case models.KindHourly:
		return fmt.Sprintf("hourly rate must be positive and hours worked between %d and %d", models.MinHoursWorked, models.MaxHoursWorked)
	case models.KindContractor:
		return "amount per project must be positive, projects completed not negative and the contract end date after today"
	}
	return "kind specific checks failed"
}
