package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/token"
)

const (
	userIDKey = "userID"
	userKey   = "user"
)

type Gate struct {
	DB        *gorm.DB
	JWTSecret []byte
}

// RequireLogin resolves the caller from the Authorization header and attaches
// the identity to the echo context. Every protected route runs through it.
func (g *Gate) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "token not provided")
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token format")
		}

		userID, err := token.Verify(parts[1], g.JWTSecret)
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		var user models.User
		if err := g.DB.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if user.Status != models.StatusActive {
			return echo.NewHTTPError(http.StatusUnauthorized, "user is inactive")
		}

		c.Set(userIDKey, user.ID)
		c.Set(userKey, user)
		return next(c)
	}
}

// UserID returns the authenticated caller's id, if any. The second return is
// false when the authentication gate did not run.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok
}

func CurrentUser(c echo.Context) (models.User, bool) {
	u, ok := c.Get(userKey).(models.User)
	return u, ok
}
