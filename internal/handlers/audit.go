package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/util"
)

type AuditHandler struct {
	DB *gorm.DB
}

func (h *AuditHandler) ListAuditLogs(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := h.DB.Model(&models.AuditLog{}).Preload("User")

	if userID := c.QueryParam("userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if action := c.QueryParam("action"); action != "" {
		q = q.Where("LOWER(action) LIKE ?", "%"+strings.ToLower(action)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var entries []models.AuditLog
	if err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": entries,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}
