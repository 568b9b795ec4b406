package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/service/closing"
)

type ReportHandler struct {
	DB *gorm.DB
}

// Overview returns the dashboard counts plus the current month's financial
// fold across all companies.
func (h *ReportHandler) Overview(c echo.Context) error {
	var companies, employees, trucks int64
	h.DB.Model(&models.Company{}).Count(&companies)
	h.DB.Model(&models.Employee{}).Where("status = ?", models.StatusActive).Count(&employees)
	h.DB.Model(&models.Truck{}).Where("status = ?", models.StatusActive).Count(&trucks)

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var tripsByStatus []statusCount
	if err := h.DB.Model(&models.Trip{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&tripsByStatus).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var entries []models.FinancialEntry
	if err := h.DB.Where("date >= ? AND date < ?", start, end).Find(&entries).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	summary := closing.Summarize(entries)

	return c.JSON(http.StatusOK, echo.Map{
		"companies":        companies,
		"active_employees": employees,
		"active_trucks":    trucks,
		"trips_by_status":  tripsByStatus,
		"current_month": echo.Map{
			"month":          start.Format(monthLayout),
			"total_entries":  summary.TotalEntries,
			"total_expenses": summary.TotalExpenses,
			"total_taxes":    summary.TotalTaxes,
			"balance":        summary.Balance,
			"profit_margin":  summary.ProfitMargin,
		},
	})
}
