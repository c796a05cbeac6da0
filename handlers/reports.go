package handlers

import (
	"strconv"

	"hr_payroll/services"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

func TotalAvailableDays(c *fiber.Ctx) error {
	return totalDays(c, services.AvailableDays, "total_available_days")
}

func TotalRequestedDays(c *fiber.Ctx) error {
	return totalDays(c, services.RequestedDays, "total_requested_days")
}

func totalDays(c *fiber.Ctx, counter services.DayCounter, key string) error {
	total, err := ReportService.TotalDays(c.UserContext(), counter)
	if err != nil {
		return fail(c, err, "Failed to compute vacation total")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    fiber.Map{key: total},
	})
}

func EmployeesByAvailableDays(c *fiber.Ctx) error {
	return employeesAbove(c, services.AvailableDays)
}

func EmployeesByRequestedDays(c *fiber.Ctx) error {
	return employeesAbove(c, services.RequestedDays)
}

func employeesAbove(c *fiber.Ctx, counter services.DayCounter) error {
	threshold, err := strconv.Atoi(c.Query("threshold", "0"))
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Query parameter 'threshold' must be an integer",
		})
	}

	employees, err := ReportService.EmployeesAbove(c.UserContext(), counter, threshold)
	if err != nil {
		return fail(c, err, "Failed to list employees")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employees,
	})
}

func VacationStats(c *fiber.Ctx) error {
	stats, ok, err := ReportService.VacationStats(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to compute vacation statistics")
	}
	if !ok {
		return c.JSON(types.APIResponse{
			Success: true,
			Data:    fiber.Map{"message": "No employees registered"},
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"total_employees": stats.TotalEmployees,
			"total_days":      stats.TotalDays,
			"average_days":    stats.AverageDays.StringFixed(2),
			"max_days":        stats.MaxDays,
			"min_days":        stats.MinDays,
		},
	})
}

func FullReport(c *fiber.Ctx) error {
	report, err := ReportService.FullReport(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to build report")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    report,
	})
}

func PayrollReport(c *fiber.Ctx) error {
	lines, err := PayrollService.PayrollReport(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to build payroll report")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    lines,
	})
}

func PayrollTotals(c *fiber.Ctx) error {
	totals, err := PayrollService.TotalsByKind(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to compute payroll totals")
	}

	data := make(map[string]string, len(totals))
	for kind, total := range totals {
		data[string(kind)] = total.StringFixed(2)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    data,
	})
}
