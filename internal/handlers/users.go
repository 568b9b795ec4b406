package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/audit"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/hash"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

type UserHandler struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	q := h.DB.Model(&models.User{}).Preload("Role")

	if search := c.QueryParam("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if roleID := c.QueryParam("roleId"); roleID != "" {
		q = q.Where("role_id = ?", roleID)
	}
	if status := c.QueryParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		RoleID   *uint  `json:"role_id"`
		Status   string `json:"status"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" {
		return validationError(c, "name e email são obrigatórios")
	}
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if req.Status != models.StatusActive && req.Status != models.StatusInactive {
		return validationError(c, "status deve ser active ou inactive")
	}

	// Admin-created users without a password get a temporary one, returned
	// in plaintext exactly once; only the hash is stored.
	password := req.Password
	tempPassword := ""
	if password == "" {
		tempPassword = strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		password = tempPassword
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Status:       req.Status,
		RoleID:       req.RoleID,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "E-mail já está em uso")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(c.Request().Context(), actor(c), "users.create", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	resp := echo.Map{"user": user}
	if tempPassword != "" {
		resp["temp_password"] = tempPassword
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		RoleID *uint  `json:"role_id"`
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" {
		return validationError(c, "name e email são obrigatórios")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "usuário não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user.Name = req.Name
	user.Email = req.Email
	user.RoleID = req.RoleID
	if req.Status != "" {
		user.Status = req.Status
	}
	if err := h.DB.Save(&user).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "E-mail já está em uso")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(c.Request().Context(), actor(c), "users.update", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return c.JSON(http.StatusOK, user)
}

// SetUserStatus toggles active/inactive. Tokens already issued stay valid
// until expiry; the authentication gate rejects inactive users on their next
// request.
func (h *UserHandler) SetUserStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Status != models.StatusActive && req.Status != models.StatusInactive {
		return validationError(c, "status deve ser active ou inactive")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "usuário não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user.Status = req.Status
	if err := h.DB.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(c.Request().Context(), actor(c), "users.status.set", map[string]interface{}{
		"user_id": user.ID,
		"status":  user.Status,
	})

	return c.JSON(http.StatusOK, user)
}
