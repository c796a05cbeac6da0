package handlers

import (
	"hr_payroll/models"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

// PayrollTotal sums the salaries of the valid records of kind.
func PayrollTotal(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		total, err := PayrollService.KindTotal(c.UserContext(), kind)
		if err != nil {
			return fail(c, err, "Failed to compute payroll total")
		}

		return c.JSON(types.APIResponse{
			Success: true,
			Data: fiber.Map{
				"kind":  kind,
				"total": total.StringFixed(2),
			},
		})
	}
}

func NetSalary(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return invalidID(c)
		}

		summary, err := PayrollService.NetSalary(c.UserContext(), id, kind)
		if err != nil {
			return fail(c, err, "Failed to compute net salary")
		}

		return c.JSON(types.APIResponse{
			Success: true,
			Data: fiber.Map{
				"person_id":  summary.PersonID,
				"salary":     summary.Salary.StringFixed(2),
				"deductions": summary.Deductions.StringFixed(2),
				"net_salary": summary.NetSalary.StringFixed(2),
			},
		})
	}
}

func Tax(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return invalidID(c)
		}

		summary, err := PayrollService.Summary(c.UserContext(), id, kind)
		if err != nil {
			return fail(c, err, "Failed to compute tax")
		}

		return c.JSON(types.APIResponse{
			Success: true,
			Data: fiber.Map{
				"person_id":  summary.PersonID,
				"salary":     summary.Salary.StringFixed(2),
				"deductions": summary.Deductions.StringFixed(2),
				"tax":        summary.Tax.StringFixed(2),
				"valid":      summary.Valid,
			},
		})
	}
}

func DepartmentPayroll(c *fiber.Ctx) error {
	managerID, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	payroll, err := PayrollService.DepartmentPayroll(c.UserContext(), managerID)
	if err != nil {
		return fail(c, err, "Failed to compute department payroll")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"manager_id": payroll.ManagerID,
			"department": payroll.Department,
			"headcount":  payroll.Headcount,
			"total":      payroll.Total.StringFixed(2),
		},
	})
}

func GetPayslip(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	pdf, err := PayrollService.Payslip(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Failed to render payslip")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=payslip.pdf")
	return c.Send(pdf)
}
