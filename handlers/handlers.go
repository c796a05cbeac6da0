package handlers

import (
	"strconv"
	"time"

	"hr_payroll/models"
	"hr_payroll/services"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	DB             *gorm.DB
	AuditSink      services.AuditSinkInterface
	PersonService  *services.PersonService
	LeaveService   *services.LeaveService
	PayrollService *services.PayrollService
	ReportService  *services.ReportService
)

func InitHandlers(db *gorm.DB, audit services.AuditSinkInterface) {
	DB = db
	AuditSink = audit
	PersonService = services.NewPersonService(db)
	LeaveService = services.NewLeaveService(db, audit)
	PayrollService = services.NewPayrollService(db, PersonService)
	ReportService = services.NewReportService(db)
}

// SetClock replaces the time source of every service.
func SetClock(now func() time.Time) {
	PersonService.Now = now
	LeaveService.Now = now
	PayrollService.Now = now
	ReportService.Now = now
}

func today() time.Time {
	return models.DateOf(PersonService.Now())
}

func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(400).JSON(types.APIResponse{
		Success: false,
		Error:   types.ErrInvalidPersonID,
	})
}

// fail hands business errors to the error handler and answers anything
// else as a logged database failure.
func fail(c *fiber.Ctx, err error, msg string) error {
	if types.KindOf(err) != "" {
		return err
	}
	utils.Logger.Error(msg, zap.String("path", c.Path()), zap.Error(err))
	return c.Status(500).JSON(types.APIResponse{
		Success: false,
		Error:   types.ErrDatabaseError,
	})
}
