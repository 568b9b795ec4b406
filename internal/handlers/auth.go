package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/hash"
	mwauth "github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/middleware/auth"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/token"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return validationError(c, "name, email e password são obrigatórios")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Status:       models.StatusActive,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			// the SPA relies on this exact message on registration
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "E-mail já está em uso"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Email ou senha inválidos")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Email ou senha inválidos")
	}
	if user.Status != models.StatusActive {
		return echo.NewHTTPError(http.StatusUnauthorized, "Email ou senha inválidos")
	}

	signed, err := token.Issue(user.ID, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": signed,
		"user":  user,
	})
}

// Me returns the authenticated user with the role and its permission keys
// resolved, the payload the SPA bootstraps from after login.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := mwauth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "token not provided")
	}

	var user models.User
	if err := h.DB.Preload("Role").First(&user, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	keys, err := mwauth.RolePermissionKeys(h.DB, user.RoleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":        user,
		"permissions": keys,
	})
}
