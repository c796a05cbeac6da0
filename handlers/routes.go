package handlers

import (
	"hr_payroll/middleware"
	"hr_payroll/models"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

// kindRoutes maps the URL prefix of each per-kind group to its variant.
var kindRoutes = []struct {
	prefix string
	kind   models.Kind
}{
	{"/employees", models.KindRegular},
	{"/full-time-employees", models.KindFullTime},
	{"/hourly-employees", models.KindHourly},
	{"/contractors", models.KindContractor},
	{"/managers", models.KindManager},
}

func RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(types.APIResponse{Success: true, Message: "ok"})
	})

	api := app.Group("/api")
	api.Post("/auth/login", Login)

	persons := api.Group("/persons")
	persons.Get("/", ListPersons(""))
	persons.Get("/search", SearchPersons)
	persons.Get("/:id", GetPerson(""))
	persons.Get("/:id/payslip", GetPayslip)
	persons.Get("/:id/leave-requests", GetPersonLeaveRequests)
	persons.Post("/", middleware.RequireAuth, CreatePerson(""))
	persons.Put("/:id", middleware.RequireAuth, UpdatePerson(""))
	persons.Delete("/:id", middleware.RequireAuth, DeletePerson(""))
	persons.Post("/:id/leave-requests", middleware.RequireAuth, RequestLeave(""))

	for _, r := range kindRoutes {
		group := api.Group(r.prefix)
		registerKindRoutes(group, r.kind)
	}

	api.Get("/leave-requests", GetLeaveRequests)

	reports := api.Group("/reports")
	reports.Get("/available-days/total", TotalAvailableDays)
	reports.Get("/requested-days/total", TotalRequestedDays)
	reports.Get("/available-days", EmployeesByAvailableDays)
	reports.Get("/requested-days", EmployeesByRequestedDays)
	reports.Get("/vacation-stats", VacationStats)
	reports.Get("/full", FullReport)
	reports.Get("/payroll", PayrollReport)
	reports.Get("/payroll-totals", PayrollTotals)
}

// registerKindRoutes mounts the CRUD and payroll routes of one variant.
// Static paths go first so they are not captured by /:id.
func registerKindRoutes(group fiber.Router, kind models.Kind) {
	group.Get("/", ListPersons(kind))
	group.Get("/active-contracts", ActiveContracts(kind))
	group.Get("/payroll-total", PayrollTotal(kind))

	switch kind {
	case models.KindFullTime:
		group.Get("/department", FullTimeByDepartment)
		group.Post("/batch", middleware.RequireAuth, CreateFullTimeBatch)
	case models.KindHourly:
		group.Get("/query", HourlyByHours)
	case models.KindManager:
		group.Get("/:id/department-payroll", DepartmentPayroll)
		group.Post("/:id/approvals/:requestId", middleware.RequireAuth,
			middleware.RequireRole(models.RoleManager, models.RoleAdmin), ProcessApproval)
	}

	group.Get("/:id", GetPerson(kind))
	group.Get("/:id/net-salary", NetSalary(kind))
	group.Get("/:id/tax", Tax(kind))
	group.Post("/", middleware.RequireAuth, CreatePerson(kind))
	group.Put("/:id", middleware.RequireAuth, UpdatePerson(kind))
	group.Delete("/:id", middleware.RequireAuth, DeletePerson(kind))

	probe := models.Person{Kind: kind}
	if probe.CanRequestLeave() {
		group.Post("/:id/leave-requests", middleware.RequireAuth, RequestLeave(kind))
	}
}
