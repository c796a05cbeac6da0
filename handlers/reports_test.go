package handlers

import (
	"fmt"
	"testing"
	"time"

	"hr_payroll/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVacationStatsEmpty(t *testing.T) {
	app, _ := SetupTest(t)

	resp, response := doRequest(t, app, "GET", "/api/reports/vacation-stats", nil, "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "No employees registered", dataMap(t, response)["message"])
}

func TestReportRoutes(t *testing.T) {
	app, db := SetupTest(t)

	createPersonFixture(t, db, regularFixture("9000001", 10, 2))
	createPersonFixture(t, db, regularFixture("9000002", 5, 0))
	manager := createPersonFixture(t, db, managerFixture("9000003", "IT"))
	createPersonFixture(t, db, &models.Person{
		Kind:          models.KindFullTime,
		FirstName:     "Carlos",
		LastName:      "Duarte",
		BirthDate:     time.Date(1985, time.August, 10, 0, 0, 0, 0, time.UTC),
		NationalID:    "9000004",
		MonthlySalary: decimal.NewNullDecimal(decimal.NewFromInt(5000000)),
		Department:    "it",
	})

	t.Run("totals", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/reports/available-days/total", nil, "")
		assert.Equal(t, float64(45), dataMap(t, response)["total_available_days"])

		_, response = doRequest(t, app, "GET", "/api/reports/requested-days/total", nil, "")
		assert.Equal(t, float64(2), dataMap(t, response)["total_requested_days"])
	})

	t.Run("employees above threshold", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/reports/available-days?threshold=5", nil, "")
		assert.Len(t, response.Data.([]interface{}), 2)

		_, response = doRequest(t, app, "GET", "/api/reports/requested-days", nil, "")
		list := response.Data.([]interface{})
		require.Len(t, list, 1)
		assert.Equal(t, "Employee", list[0].(map[string]interface{})["employee_type"])

		resp, _ := doRequest(t, app, "GET", "/api/reports/available-days?threshold=ten", nil, "")
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("vacation stats", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/reports/vacation-stats", nil, "")
		data := dataMap(t, response)
		assert.Equal(t, float64(3), data["total_employees"])
		assert.Equal(t, float64(45), data["total_days"])
		assert.Equal(t, "15.00", data["average_days"])
		assert.Equal(t, float64(30), data["max_days"])
		assert.Equal(t, float64(5), data["min_days"])
	})

	t.Run("full report", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/reports/full", nil, "")
		data := dataMap(t, response)
		assert.Equal(t, float64(3), data["total_employees"])
		assert.Equal(t, float64(2), data["total_requested_days"])
		assert.Len(t, data["employees"], 3)
	})

	t.Run("payroll report covers every kind", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/reports/payroll", nil, "")
		assert.Len(t, response.Data.([]interface{}), 4)
	})

	t.Run("payroll totals", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/reports/payroll-totals", nil, "")
		data := dataMap(t, response)
		assert.Equal(t, "10000000.00", data["REGULAR"])
		assert.Equal(t, "4550000.00", data["FULL_TIME"])
		assert.Equal(t, "7500000.00", data["MANAGER"])
		assert.Equal(t, "0.00", data["CONTRACTOR"])
	})

	t.Run("department payroll", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", fmt.Sprintf("/api/managers/%d/department-payroll", manager.ID), nil, "")
		data := dataMap(t, response)
		assert.Equal(t, float64(2), data["headcount"])
		assert.Equal(t, "12050000.00", data["total"])
	})
}
