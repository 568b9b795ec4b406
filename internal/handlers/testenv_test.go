package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/audit"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/config"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/hash"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Auth  *AuthHandler
	Users *UserHandler
	Roles *RoleHandler
	Logs  *AuditHandler
	Fin   *FinancialHandler
	Truck *TruckHandler
	Comp  *CompanyHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	recorder := &audit.Recorder{DB: db}
	fleet := &FleetSideEffects{}

	return &testEnv{
		T:     t,
		E:     echo.New(),
		DB:    db,
		Auth:  &AuthHandler{DB: db, JWTSecret: testSecret},
		Users: &UserHandler{DB: db, Audit: recorder},
		Roles: &RoleHandler{DB: db, Audit: recorder},
		Logs:  &AuditHandler{DB: db},
		Fin:   &FinancialHandler{DB: db, Audit: recorder},
		Truck: &TruckHandler{DB: db, Fleet: fleet},
		Comp:  &CompanyHandler{DB: db, Fleet: fleet},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) doJSONRequestID(method, path string, id uint, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	rec, c := env.doJSONRequest(method, path, body)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(id))
	return rec, c
}

func (env *testEnv) createUser(email, password string, roleID *uint) models.User {
	env.T.Helper()
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: pwHash,
		Status:       models.StatusActive,
		RoleID:       roleID,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) createRole(name string, keys ...string) models.Role {
	env.T.Helper()
	role := models.Role{Name: name}
	require.NoError(env.T, env.DB.Create(&role).Error)
	for _, key := range keys {
		perm := models.Permission{Key: key}
		require.NoError(env.T, env.DB.Where(models.Permission{Key: key}).FirstOrCreate(&perm).Error)
		require.NoError(env.T, env.DB.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error)
	}
	return role
}

func (env *testEnv) createCompany(name, cnpj string) models.Company {
	env.T.Helper()
	company := models.Company{Name: name, CNPJ: cnpj}
	require.NoError(env.T, env.DB.Create(&company).Error)
	return company
}

func requireHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	require.Equal(t, message, he.Message)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
