package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/audit"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/service/closing"
)

const monthLayout = "2006-01"

type FinancialHandler struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

func monthWindow(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

func (h *FinancialHandler) entriesForMonth(companyID, month string) ([]models.FinancialEntry, error) {
	start, end, err := monthWindow(month)
	if err != nil {
		return nil, err
	}

	var entries []models.FinancialEntry
	err = h.DB.Where("company_id = ? AND date >= ? AND date < ?", companyID, start, end).
		Find(&entries).Error
	return entries, err
}

func (h *FinancialHandler) ListEntries(c echo.Context) error {
	q := h.DB.Model(&models.FinancialEntry{})
	if companyID := c.QueryParam("companyId"); companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	if etype := c.QueryParam("type"); etype != "" {
		q = q.Where("type = ?", etype)
	}
	if month := c.QueryParam("month"); month != "" {
		start, end, err := monthWindow(month)
		if err != nil {
			return validationError(c, "month inválido, use YYYY-MM")
		}
		q = q.Where("date >= ? AND date < ?", start, end)
	}

	var entries []models.FinancialEntry
	if err := q.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, entries)
}

type entryRequest struct {
	CompanyID   uint    `json:"company_id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

func (r *entryRequest) validate() ([]string, time.Time) {
	var errs []string
	if r.CompanyID == 0 {
		errs = append(errs, "company_id é obrigatório")
	}
	switch r.Type {
	case models.EntryTypeIncome, models.EntryTypeExpense, models.EntryTypeTax:
	default:
		errs = append(errs, "type deve ser entrada, saida ou imposto")
	}
	if r.Description == "" {
		errs = append(errs, "description é obrigatória")
	}
	if r.Amount < 0 {
		errs = append(errs, "amount não pode ser negativo")
	}
	date, err := parseDate(r.Date)
	if err != nil {
		errs = append(errs, "date inválida")
	}
	return errs, date
}

func (h *FinancialHandler) CreateEntry(c echo.Context) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	errs, date := req.validate()
	if len(errs) > 0 {
		return validationError(c, errs...)
	}

	if err := h.DB.First(&models.Company{}, req.CompanyID).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "empresa não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	entry := models.FinancialEntry{
		CompanyID:   req.CompanyID,
		Type:        req.Type,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *FinancialHandler) UpdateEntry(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	errs, date := req.validate()
	if len(errs) > 0 {
		return validationError(c, errs...)
	}

	var entry models.FinancialEntry
	if err := h.DB.First(&entry, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "lançamento não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	entry.CompanyID = req.CompanyID
	entry.Type = req.Type
	entry.Description = req.Description
	entry.Amount = req.Amount
	entry.Date = date
	if err := h.DB.Save(&entry).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *FinancialHandler) DeleteEntry(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var entry models.FinancialEntry
	if err := h.DB.First(&entry, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "lançamento não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// a closed month is immutable
	month := entry.Date.Format(monthLayout)
	var closings int64
	if err := h.DB.Model(&models.Closing{}).
		Where("company_id = ? AND month = ?", entry.CompanyID, month).
		Count(&closings).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if closings > 0 {
		return echo.NewHTTPError(http.StatusConflict, "mês já fechado para esta empresa")
	}

	if err := h.DB.Delete(&models.FinancialEntry{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary recomputes the month's totals on demand from the entry rows.
func (h *FinancialHandler) Summary(c echo.Context) error {
	companyID := c.QueryParam("companyId")
	month := c.QueryParam("month")
	if companyID == "" || month == "" {
		return validationError(c, "companyId e month são obrigatórios")
	}

	if _, _, err := monthWindow(month); err != nil {
		return validationError(c, "month inválido, use YYYY-MM")
	}

	entries, err := h.entriesForMonth(companyID, month)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	summary := closing.Summarize(entries)
	return c.JSON(http.StatusOK, echo.Map{
		"company_id":     companyID,
		"month":          month,
		"total_entries":  summary.TotalEntries,
		"total_expenses": summary.TotalExpenses,
		"total_taxes":    summary.TotalTaxes,
		"balance":        summary.Balance,
		"profit_margin":  summary.ProfitMargin,
		"entry_count":    len(entries),
	})
}

func (h *FinancialHandler) ListClosings(c echo.Context) error {
	q := h.DB.Model(&models.Closing{}).Preload("Company")
	if companyID := c.QueryParam("companyId"); companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}

	var closings []models.Closing
	if err := q.Order("month DESC").Find(&closings).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, closings)
}

// CreateClosing persists a snapshot of the month's totals. One closing per
// company and month; the totals are recomputed from the rows at close time.
func (h *FinancialHandler) CreateClosing(c echo.Context) error {
	var req struct {
		CompanyID uint   `json:"company_id"`
		Month     string `json:"month"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.CompanyID == 0 {
		return validationError(c, "company_id é obrigatório")
	}
	start, end, err := monthWindow(req.Month)
	if err != nil {
		return validationError(c, "month inválido, use YYYY-MM")
	}

	if err := h.DB.First(&models.Company{}, req.CompanyID).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "empresa não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var entries []models.FinancialEntry
	if err := h.DB.Where("company_id = ? AND date >= ? AND date < ?", req.CompanyID, start, end).
		Find(&entries).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	summary := closing.Summarize(entries)
	snapshot := models.Closing{
		CompanyID:     req.CompanyID,
		Month:         req.Month,
		TotalEntries:  summary.TotalEntries,
		TotalExpenses: summary.TotalExpenses,
		TotalTaxes:    summary.TotalTaxes,
		Balance:       summary.Balance,
		ProfitMargin:  summary.ProfitMargin,
	}
	if err := h.DB.Create(&snapshot).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "mês já fechado para esta empresa")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(c.Request().Context(), actor(c), "closings.create", map[string]interface{}{
		"closing_id": snapshot.ID,
		"company_id": snapshot.CompanyID,
		"month":      snapshot.Month,
	})

	return c.JSON(http.StatusCreated, snapshot)
}

func (h *FinancialHandler) DeleteClosing(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var snapshot models.Closing
	if err := h.DB.First(&snapshot, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "fechamento não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := h.DB.Delete(&models.Closing{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(c.Request().Context(), actor(c), "closings.delete", map[string]interface{}{
		"closing_id": id,
		"company_id": snapshot.CompanyID,
		"month":      snapshot.Month,
	})

	return c.NoContent(http.StatusNoContent)
}
