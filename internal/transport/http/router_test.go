package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/audit"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/config"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/handlers"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/hash"
	mwauth "github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/middleware/auth"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

var testSecret = []byte("test-secret")

func newServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())

	gate := &mwauth.Gate{DB: db, JWTSecret: testSecret}
	recorder := &audit.Recorder{DB: db}
	fleet := &handlers.FleetSideEffects{}

	Register(e, &Deps{
		Gate:        gate,
		Auth:        &handlers.AuthHandler{DB: db, JWTSecret: testSecret},
		Users:       &handlers.UserHandler{DB: db, Audit: recorder},
		Roles:       &handlers.RoleHandler{DB: db, Audit: recorder},
		Audit:       &handlers.AuditHandler{DB: db},
		Companies:   &handlers.CompanyHandler{DB: db, Fleet: fleet},
		Employees:   &handlers.EmployeeHandler{DB: db},
		Trucks:      &handlers.TruckHandler{DB: db, Fleet: fleet},
		Trips:       &handlers.TripHandler{DB: db, Fleet: fleet},
		Maintenance: &handlers.MaintenanceHandler{DB: db},
		Financial:   &handlers.FinancialHandler{DB: db, Audit: recorder},
		Reports:     &handlers.ReportHandler{DB: db},
		Search:      &handlers.SearchHandler{},
	})
	return e, db
}

func do(t *testing.T, e *echo.Echo, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, roleID *uint) models.User {
	t.Helper()
	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: pwHash,
		Status:       models.StatusActive,
		RoleID:       roleID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedRole(t *testing.T, db *gorm.DB, name string, keys ...string) models.Role {
	t.Helper()
	role := models.Role{Name: name}
	require.NoError(t, db.Create(&role).Error)
	for _, key := range keys {
		perm := models.Permission{Key: key}
		require.NoError(t, db.Where(models.Permission{Key: key}).FirstOrCreate(&perm).Error)
		require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error)
	}
	return role
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestFinanceRoleScenario(t *testing.T) {
	e, db := newServer(t)

	role := seedRole(t, db, "Finance", "financial.view", "financial.create")
	seedUser(t, db, "fin@b.com", "password", &role.ID)

	company := models.Company{Name: "Transportes X", CNPJ: "00.000.000/0001-00"}
	require.NoError(t, db.Create(&company).Error)

	tok := login(t, e, "fin@b.com", "password")

	// granted permission → 2xx
	rec := do(t, e, http.MethodPost, "/api/v1/financial/entries", tok, map[string]interface{}{
		"company_id":  company.ID,
		"type":        "entrada",
		"description": "frete",
		"amount":      100.0,
		"date":        "2026-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// missing permission → 403 with the canonical message
	rec = do(t, e, http.MethodGet, "/api/v1/users", tok, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "insufficient permission", resp["message"])
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	e, _ := newServer(t)

	rec := do(t, e, http.MethodGet, "/api/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "token not provided", resp["message"])
}

func TestPermissionChangeAffectsLoggedInUser(t *testing.T) {
	e, db := newServer(t)

	role := seedRole(t, db, "Ops", "trips.view")
	seedUser(t, db, "ops@b.com", "password", &role.ID)
	tok := login(t, e, "ops@b.com", "password")

	rec := do(t, e, http.MethodGet, "/api/v1/reports/overview", tok, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// grant reports.view to the role; same token must now pass
	perm := models.Permission{Key: "reports.view"}
	require.NoError(t, db.Where(models.Permission{Key: perm.Key}).FirstOrCreate(&perm).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error)

	rec = do(t, e, http.MethodGet, "/api/v1/reports/overview", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	e, _ := newServer(t)

	require.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/health/live", "", nil).Code)
	require.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/health/ready", "", nil).Code)
}
