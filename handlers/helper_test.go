package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hr_payroll/config"
	"hr_payroll/models"
	"hr_payroll/services"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

var testToday = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

// SetupTest builds a fresh app over a private in-memory database.
func SetupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	config.AppConfig.JWTSecret = testSecret
	config.AppConfig.TokenExpiry = time.Hour

	InitHandlers(db, &services.LogAuditSink{})
	SetClock(func() time.Time { return testToday.Add(10 * time.Hour) })

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app)
	return app, db
}

// Helper function to create test JWT token
func createTestToken(t *testing.T, role string) string {
	t.Helper()
	token, err := IssueToken(uuid.NewString(), role, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, types.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var response types.APIResponse
	if strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	}
	return resp, response
}

func dataMap(t *testing.T, response types.APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := response.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", response.Data)
	return m
}

func createPersonFixture(t *testing.T, db *gorm.DB, p *models.Person) *models.Person {
	t.Helper()
	require.NoError(t, db.Create(p).Error)
	return p
}

func regularFixture(nationalID string, balance, requested int) *models.Person {
	hired := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &models.Person{
		Kind:              models.KindRegular,
		FirstName:         "Ana",
		LastName:          "Benitez",
		BirthDate:         time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		NationalID:        nationalID,
		HireDate:          &hired,
		VacationBalance:   balance,
		VacationRequested: requested,
	}
}

func managerFixture(nationalID, department string) *models.Person {
	hired := time.Date(2018, time.March, 1, 0, 0, 0, 0, time.UTC)
	return &models.Person{
		Kind:            models.KindManager,
		FirstName:       "Ines",
		LastName:        "Jara",
		BirthDate:       time.Date(1980, time.May, 2, 0, 0, 0, 0, time.UTC),
		NationalID:      nationalID,
		HireDate:        &hired,
		VacationBalance: 30,
		Department:      department,
	}
}
