package handlers

import (
	"errors"
	"time"

	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var kindStatus = map[types.ErrorKind]int{
	types.KindPermissionDenied: fiber.StatusForbidden,
	types.KindInsufficientDays: fiber.StatusUnprocessableEntity,
	types.KindEntityNotFound:   fiber.StatusNotFound,
	types.KindInvalidBirthDate: fiber.StatusBadRequest,
	types.KindValidationFailed: fiber.StatusBadRequest,
}

// ErrorHandler is the application-wide fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	details := &types.ErrorDetails{
		Timestamp: time.Now(),
		Path:      c.Path(),
	}

	var businessErr *types.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &businessErr):
		details.Status = kindStatus[businessErr.Kind]
		details.Kind = businessErr.Kind
		details.Reason = businessErr.Reason
		details.Fields = businessErr.Fields
		utils.Logger.Warn("Request rejected",
			zap.String("path", c.Path()),
			zap.String("kind", string(businessErr.Kind)),
			zap.String("message", businessErr.Message),
		)
		return c.Status(details.Status).JSON(types.APIResponse{
			Success: false,
			Error:   businessErr.Message,
			Details: details,
		})

	case errors.As(err, &fiberErr):
		details.Status = fiberErr.Code
		return c.Status(fiberErr.Code).JSON(types.APIResponse{
			Success: false,
			Error:   fiberErr.Message,
			Details: details,
		})
	}

	utils.Logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
	details.Status = fiber.StatusInternalServerError
	return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
		Success: false,
		Error:   types.ErrInternalError,
		Details: details,
	})
}
