package handlers

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"hr_payroll/models"
	"hr_payroll/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullTimeBody(nationalID string) map[string]interface{} {
	return map[string]interface{}{
		"first_name":     "Carlos",
		"last_name":      "Duarte",
		"birth_date":     "1985-08-10",
		"national_id":    nationalID,
		"monthly_salary": 5000000,
		"department":     "Engineering",
	}
}

func TestListPersons(t *testing.T) {
	app, db := SetupTest(t)

	t.Run("empty list", func(t *testing.T) {
		resp, response := doRequest(t, app, "GET", "/api/persons", nil, "")
		assert.Equal(t, 200, resp.StatusCode)
		assert.True(t, response.Success)
		assert.Len(t, response.Data.([]interface{}), 0)
	})

	createPersonFixture(t, db, regularFixture("1000001", 10, 0))
	createPersonFixture(t, db, managerFixture("1000002", "IT"))

	t.Run("all persons", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/persons", nil, "")
		assert.Len(t, response.Data.([]interface{}), 2)
	})

	t.Run("per kind", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/managers", nil, "")
		managers := response.Data.([]interface{})
		require.Len(t, managers, 1)

		manager := managers[0].(map[string]interface{})
		assert.Equal(t, "MANAGER", manager["kind"])
		assert.Equal(t, "7500000.00", manager["salary"])
		assert.Equal(t, float64(30), manager["vacation_balance"])
	})
}

func TestCreatePersonRoutes(t *testing.T) {
	app, _ := SetupTest(t)
	token := createTestToken(t, models.RoleHR)

	t.Run("requires a token", func(t *testing.T) {
		resp, response := doRequest(t, app, "POST", "/api/full-time-employees", fullTimeBody("2000001"), "")
		assert.Equal(t, 401, resp.StatusCode)
		assert.False(t, response.Success)
	})

	t.Run("creates a full time employee", func(t *testing.T) {
		resp, response := doRequest(t, app, "POST", "/api/full-time-employees", fullTimeBody("2000001"), token)
		require.Equal(t, 201, resp.StatusCode)

		data := dataMap(t, response)
		assert.Equal(t, "FULL_TIME", data["kind"])
		assert.Equal(t, "1985-08-10", data["birth_date"])
		assert.Equal(t, "4550000.00", data["salary"])
		assert.Equal(t, "250000.00", data["deductions"])
		assert.Equal(t, true, data["valid"])
		assert.NotContains(t, data, "vacation_balance")
	})

	t.Run("duplicate national ID", func(t *testing.T) {
		resp, response := doRequest(t, app, "POST", "/api/full-time-employees", fullTimeBody("2000001"), token)
		assert.Equal(t, 400, resp.StatusCode)
		require.NotNil(t, response.Details)
		assert.Equal(t, types.KindValidationFailed, response.Details.Kind)
	})

	t.Run("malformed national ID", func(t *testing.T) {
		resp, response := doRequest(t, app, "POST", "/api/full-time-employees", fullTimeBody("0123"), token)
		assert.Equal(t, 400, resp.StatusCode)
		require.NotNil(t, response.Details)
		require.Len(t, response.Details.Fields, 1)
		assert.Equal(t, "national_id", response.Details.Fields[0].Field)
	})

	t.Run("below minimum salary", func(t *testing.T) {
		body := fullTimeBody("2000002")
		body["monthly_salary"] = 1000
		resp, response := doRequest(t, app, "POST", "/api/full-time-employees", body, token)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, types.KindValidationFailed, response.Details.Kind)
	})

	t.Run("birth date in the future", func(t *testing.T) {
		body := fullTimeBody("2000003")
		body["birth_date"] = "2030-01-01"
		resp, response := doRequest(t, app, "POST", "/api/full-time-employees", body, token)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, types.KindInvalidBirthDate, response.Details.Kind)
	})

	t.Run("generic route reads the kind from the body", func(t *testing.T) {
		body := map[string]interface{}{
			"kind":        "manager",
			"first_name":  "Ines",
			"last_name":   "Jara",
			"birth_date":  "1980-05-02",
			"national_id": "2000004",
			"department":  "Engineering",
		}
		resp, response := doRequest(t, app, "POST", "/api/persons", body, token)
		require.Equal(t, 201, resp.StatusCode)

		data := dataMap(t, response)
		assert.Equal(t, "MANAGER", data["kind"])
		assert.Equal(t, float64(30), data["vacation_balance"])
		assert.Equal(t, "2026-06-15", data["hire_date"])
	})

	t.Run("generic route needs a kind", func(t *testing.T) {
		resp, _ := doRequest(t, app, "POST", "/api/persons", fullTimeBody("2000005"), token)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("hourly with too many hours", func(t *testing.T) {
		body := map[string]interface{}{
			"first_name":   "Elena",
			"last_name":    "Fernandez",
			"birth_date":   "1998-11-05",
			"national_id":  "2000006",
			"hourly_rate":  "50000",
			"hours_worked": 81,
		}
		resp, _ := doRequest(t, app, "POST", "/api/hourly-employees", body, token)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestGetUpdateDeletePerson(t *testing.T) {
	app, db := SetupTest(t)
	token := createTestToken(t, models.RoleAdmin)
	manager := createPersonFixture(t, db, managerFixture("3000001", "IT"))
	path := fmt.Sprintf("/api/managers/%d", manager.ID)

	t.Run("get", func(t *testing.T) {
		resp, response := doRequest(t, app, "GET", path, nil, "")
		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, dataMap(t, response)["full_info"], "MANAGER (IT)")
	})

	t.Run("wrong kind route", func(t *testing.T) {
		resp, response := doRequest(t, app, "GET", fmt.Sprintf("/api/employees/%d", manager.ID), nil, "")
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, types.KindEntityNotFound, response.Details.Kind)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := doRequest(t, app, "GET", "/api/managers/abc", nil, "")
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("update keeps counters when omitted", func(t *testing.T) {
		body := map[string]interface{}{
			"first_name":  "Ines",
			"last_name":   "Jara-Lopez",
			"birth_date":  "1980-05-02",
			"national_id": "3000001",
			"department":  "Finance",
		}
		resp, response := doRequest(t, app, "PUT", path, body, token)
		require.Equal(t, 200, resp.StatusCode)

		data := dataMap(t, response)
		assert.Equal(t, "Jara-Lopez", data["last_name"])
		assert.Equal(t, "Finance", data["department"])
		assert.Equal(t, float64(30), data["vacation_balance"])
		assert.Equal(t, "2018-03-01", data["hire_date"])
	})

	t.Run("delete", func(t *testing.T) {
		resp, _ := doRequest(t, app, "DELETE", path, nil, token)
		assert.Equal(t, 200, resp.StatusCode)

		resp, _ = doRequest(t, app, "GET", path, nil, "")
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestQueryRoutes(t *testing.T) {
	app, db := SetupTest(t)
	token := createTestToken(t, models.RoleHR)

	for i, hours := range []int{20, 50} {
		body := map[string]interface{}{
			"first_name":   "Elena",
			"last_name":    "Fernandez",
			"birth_date":   "1998-11-05",
			"national_id":  fmt.Sprintf("400000%d", i+1),
			"hourly_rate":  10000,
			"hours_worked": hours,
		}
		resp, _ := doRequest(t, app, "POST", "/api/hourly-employees", body, token)
		require.Equal(t, 201, resp.StatusCode)
	}
	createPersonFixture(t, db, regularFixture("4000003", 10, 0))

	t.Run("search", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/persons/search?name=BENI", nil, "")
		assert.Len(t, response.Data.([]interface{}), 1)
	})

	t.Run("hourly above hours", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/hourly-employees/query?hours=40", nil, "")
		list := response.Data.([]interface{})
		require.Len(t, list, 1)
		assert.Equal(t, "550000.00", list[0].(map[string]interface{})["salary"])
	})

	t.Run("hourly hours must be numeric", func(t *testing.T) {
		resp, _ := doRequest(t, app, "GET", "/api/hourly-employees/query?hours=many", nil, "")
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("payroll total per kind", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/hourly-employees/payroll-total", nil, "")
		assert.Equal(t, "750000.00", dataMap(t, response)["total"])
	})
}

func TestFullTimeRoutes(t *testing.T) {
	app, _ := SetupTest(t)
	token := createTestToken(t, models.RoleHR)

	batch := make([]map[string]interface{}, 0, 3)
	for i := 0; i < 3; i++ {
		body := fullTimeBody(fmt.Sprintf("500000%d", i+1))
		if i == 2 {
			body["department"] = "Sales"
		}
		batch = append(batch, body)
	}

	resp, response := doRequest(t, app, "POST", "/api/full-time-employees/batch", batch, token)
	require.Equal(t, 201, resp.StatusCode)
	assert.Len(t, response.Data.([]interface{}), 3)

	t.Run("department", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/full-time-employees/department?name=engineering", nil, "")
		assert.Len(t, response.Data.([]interface{}), 2)

		resp, _ := doRequest(t, app, "GET", "/api/full-time-employees/department", nil, "")
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("net salary and tax", func(t *testing.T) {
		_, response := doRequest(t, app, "GET", "/api/full-time-employees/1/net-salary", nil, "")
		assert.Equal(t, "4300000.00", dataMap(t, response)["net_salary"])

		_, response = doRequest(t, app, "GET", "/api/full-time-employees/1/tax", nil, "")
		assert.Equal(t, "3845000.00", dataMap(t, response)["tax"])
	})

	t.Run("batch with a duplicate", func(t *testing.T) {
		dup := []map[string]interface{}{fullTimeBody("5100001"), fullTimeBody("5100001")}
		resp, response := doRequest(t, app, "POST", "/api/full-time-employees/batch", dup, token)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Contains(t, response.Error, "record 1")
	})
}

func TestPayslipRoute(t *testing.T) {
	app, db := SetupTest(t)
	p := createPersonFixture(t, db, regularFixture("6000001", 10, 0))

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/persons/%d/payslip", p.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(body[:4]))
}
