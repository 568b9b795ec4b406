package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	mwauth "github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/middleware/auth"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

func (env *testEnv) setPermissions(roleID uint, keys []string) *roleResponse {
	env.T.Helper()
	rec, c := env.doJSONRequestID(http.MethodPut, "/roles/:id/permissions", roleID,
		map[string]interface{}{"permissions": keys})
	require.NoError(env.T, env.Roles.SetRolePermissions(c))
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp roleResponse
	decodeBody(env.T, rec, &resp)
	return &resp
}

func TestCreateRole(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/roles", map[string]string{
		"name":        "Finance",
		"description": "financeiro",
	})
	require.NoError(t, env.Roles.CreateRole(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var role models.Role
	decodeBody(t, rec, &role)
	require.Equal(t, "Finance", role.Name)
	require.NotEmpty(t, role.ID)

	// audit trail for the mutation
	var entry models.AuditLog
	require.NoError(t, env.DB.Where("action = ?", "roles.create").First(&entry).Error)
}

func TestCreateRoleDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	env.createRole("Finance")

	_, c := env.doJSONRequest(http.MethodPost, "/roles", map[string]string{"name": "Finance"})
	err := env.Roles.CreateRole(c)
	requireHTTPError(t, err, http.StatusConflict, "já existe um perfil com esse nome")
}

func TestUpdateRoleNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequestID(http.MethodPut, "/roles/:id", 999, map[string]string{"name": "X"})
	err := env.Roles.UpdateRole(c)
	requireHTTPError(t, err, http.StatusNotFound, "perfil não encontrado")
}

func TestSetRolePermissionsFullReplace(t *testing.T) {
	env := newTestEnv(t)
	role := env.createRole("Finance")

	resp := env.setPermissions(role.ID, []string{"financial.view", "financial.create"})
	require.Equal(t, []string{"financial.create", "financial.view"}, resp.Permissions)

	// replace, not union
	resp = env.setPermissions(role.ID, []string{"financial.view"})
	require.Equal(t, []string{"financial.view"}, resp.Permissions)

	// empty list revokes everything
	resp = env.setPermissions(role.ID, []string{})
	require.Empty(t, resp.Permissions)
}

func TestSetRolePermissionsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	role := env.createRole("Finance")

	keys := []string{"financial.view", "financial.create"}
	first := env.setPermissions(role.ID, keys)
	second := env.setPermissions(role.ID, keys)
	require.Equal(t, first.Permissions, second.Permissions)

	var rows int64
	require.NoError(t, env.DB.Model(&models.RolePermission{}).
		Where("role_id = ?", role.ID).Count(&rows).Error)
	require.Equal(t, int64(2), rows)
}

func TestSetRolePermissionsCreatesMissingKeys(t *testing.T) {
	env := newTestEnv(t)
	role := env.createRole("Ops")

	env.setPermissions(role.ID, []string{"trips.view", "trips.view", "trips.manage"})

	var perms []models.Permission
	require.NoError(t, env.DB.Where("key LIKE ?", "trips.%").Order("key").Find(&perms).Error)
	require.Len(t, perms, 2)

	keys, err := mwauth.RolePermissionKeys(env.DB, &role.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"trips.manage", "trips.view"}, keys)
}

func TestSetRolePermissionsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequestID(http.MethodPut, "/roles/:id/permissions", 999,
		map[string]interface{}{"permissions": []string{"x.y"}})
	err := env.Roles.SetRolePermissions(c)
	requireHTTPError(t, err, http.StatusNotFound, "perfil não encontrado")
}

func TestDeleteRoleInUse(t *testing.T) {
	env := newTestEnv(t)
	role := env.createRole("Finance")
	env.createUser("fin@b.com", "password", &role.ID)

	_, c := env.doJSONRequestID(http.MethodDelete, "/roles/:id", role.ID, nil)
	err := env.Roles.DeleteRole(c)
	requireHTTPError(t, err, http.StatusConflict, "perfil em uso por usuários")
}

func TestDeleteRole(t *testing.T) {
	env := newTestEnv(t)
	role := env.createRole("Finance", "financial.view")

	rec, c := env.doJSONRequestID(http.MethodDelete, "/roles/:id", role.ID, nil)
	require.NoError(t, env.Roles.DeleteRole(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var rows int64
	require.NoError(t, env.DB.Model(&models.RolePermission{}).
		Where("role_id = ?", role.ID).Count(&rows).Error)
	require.Zero(t, rows)
}

func TestListRoles(t *testing.T) {
	env := newTestEnv(t)
	env.createRole("Operações", "trips.view")
	env.createRole("Finance", "financial.view")

	rec, c := env.doJSONRequest(http.MethodGet, "/roles", nil)
	require.NoError(t, env.Roles.ListRoles(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var roles []roleResponse
	decodeBody(t, rec, &roles)
	require.Len(t, roles, 2)
	require.Equal(t, "Finance", roles[0].Name)
	require.Equal(t, []string{"financial.view"}, roles[0].Permissions)
	require.Equal(t, "Operações", roles[1].Name)
}

func TestListPermissionsOrderedByKey(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Create(&models.Permission{Key: "users.manage"}).Error)
	require.NoError(t, env.DB.Create(&models.Permission{Key: "audit.view"}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/permissions", nil)
	require.NoError(t, env.Roles.ListPermissions(c))

	var perms []models.Permission
	decodeBody(t, rec, &perms)
	require.Len(t, perms, 2)
	require.Equal(t, "audit.view", perms[0].Key)
	require.Equal(t, "users.manage", perms[1].Key)
}
