package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

// RequirePermission gates a route on one permission key. It composes after
// RequireLogin and fails closed when no identity is attached. The permission
// set is read from the store on every request, never from the token, so role
// changes take effect on the caller's next request.
func (g *Gate) RequirePermission(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permission")
			}

			keys, err := RolePermissionKeys(g.DB, user.RoleID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
			}

			for _, k := range keys {
				if k == key {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient permission")
		}
	}
}

// RolePermissionKeys loads the permission keys granted to a role, ordered by
// key. A nil role grants nothing.
func RolePermissionKeys(db *gorm.DB, roleID *uint) ([]string, error) {
	if roleID == nil {
		return nil, nil
	}

	var keys []string
	err := db.Model(&models.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", *roleID).
		Order("permissions.key ASC").
		Pluck("permissions.key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}
