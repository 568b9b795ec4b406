package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/audit"
	mwauth "github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/middleware/auth"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

type RoleHandler struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

type roleResponse struct {
	models.Role
	Permissions []string `json:"permissions"`
	UserCount   int64    `json:"user_count"`
}

func (h *RoleHandler) roleWithPermissions(role models.Role) (roleResponse, error) {
	keys, err := mwauth.RolePermissionKeys(h.DB, &role.ID)
	if err != nil {
		return roleResponse{}, err
	}
	if keys == nil {
		keys = []string{}
	}

	var users int64
	if err := h.DB.Model(&models.User{}).Where("role_id = ?", role.ID).Count(&users).Error; err != nil {
		return roleResponse{}, err
	}

	return roleResponse{Role: role, Permissions: keys, UserCount: users}, nil
}

func (h *RoleHandler) ListPermissions(c echo.Context) error {
	var perms []models.Permission
	if err := h.DB.Order("key ASC").Find(&perms).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, perms)
}

func (h *RoleHandler) ListRoles(c echo.Context) error {
	var roles []models.Role
	if err := h.DB.Order("name ASC").Find(&roles).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		resp, err := h.roleWithPermissions(role)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return validationError(c, "name é obrigatório")
	}

	role := models.Role{Name: req.Name, Description: req.Description}
	if err := h.DB.Create(&role).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "já existe um perfil com esse nome")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(c.Request().Context(), actor(c), "roles.create", map[string]interface{}{
		"role_id": role.ID,
		"name":    role.Name,
	})

	return c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) UpdateRole(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return validationError(c, "name é obrigatório")
	}

	var role models.Role
	if err := h.DB.First(&role, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "perfil não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := h.DB.Save(&role).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "já existe um perfil com esse nome")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(c.Request().Context(), actor(c), "roles.update", map[string]interface{}{
		"role_id": role.ID,
		"name":    role.Name,
	})

	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) DeleteRole(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var role models.Role
	if err := h.DB.First(&role, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "perfil não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var users int64
	if err := h.DB.Model(&models.User{}).Where("role_id = ?", id).Count(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if users > 0 {
		return echo.NewHTTPError(http.StatusConflict, "perfil em uso por usuários")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Role{}, id).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(c.Request().Context(), actor(c), "roles.delete", map[string]interface{}{
		"role_id": id,
		"name":    role.Name,
	})

	return c.NoContent(http.StatusNoContent)
}

// SetRolePermissions replaces the role's entire permission set in one
// transaction: keys missing from the permission table are created, then every
// existing assignment is dropped and one row is inserted per input key. An
// empty list revokes everything.
func (h *RoleHandler) SetRolePermissions(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Permissions []string `json:"permissions"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var role models.Role
	if err := h.DB.First(&role, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "perfil não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	keys := dedupe(req.Permissions)

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		perms := make([]models.Permission, 0, len(keys))
		for _, key := range keys {
			var perm models.Permission
			if err := tx.Where(models.Permission{Key: key}).FirstOrCreate(&perm).Error; err != nil {
				return err
			}
			perms = append(perms, perm)
		}

		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}

		for _, perm := range perms {
			rp := models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}
			if err := tx.Create(&rp).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(c.Request().Context(), actor(c), "roles.permissions.set", map[string]interface{}{
		"role_id":     role.ID,
		"permissions": keys,
	})

	resp, err := h.roleWithPermissions(role)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, resp)
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
