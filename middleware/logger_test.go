package middleware

import (
	"net/http/httptest"
	"testing"

	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerRecordsRenderedStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	previous := utils.Logger
	utils.Logger = zap.New(core)
	t.Cleanup(func() { utils.Logger = previous })

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(418).SendString(err.Error())
		},
	})
	app.Use(requestid.New())
	app.Use(RequestLogger)
	app.Get("/fails", func(c *fiber.Ctx) error {
		return fiber.ErrBadRequest
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fails", nil))
	require.NoError(t, err)
	assert.Equal(t, 418, resp.StatusCode)

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(418), fields["status"])
	assert.Equal(t, "/fails", fields["path"])
	assert.NotEmpty(t, fields["request_id"])
}
