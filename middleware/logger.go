package middleware

import (
	"time"

	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request. It expects the requestid
// middleware to have run first.
func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	// Errors are rendered here so the logged status is the one sent.
	if chainErr := c.Next(); chainErr != nil {
		if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()

	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
	}
	if status >= 500 {
		utils.Logger.Error("HTTP request", fields...)
	} else {
		utils.Logger.Info("HTTP request", fields...)
	}
	return nil
}
