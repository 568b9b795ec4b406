package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

type MaintenanceHandler struct {
	DB *gorm.DB
}

func (h *MaintenanceHandler) ListMaintenances(c echo.Context) error {
	q := h.DB.Model(&models.Maintenance{}).Preload("Truck")
	if truckID := c.QueryParam("truckId"); truckID != "" {
		q = q.Where("truck_id = ?", truckID)
	}
	if mtype := c.QueryParam("type"); mtype != "" {
		q = q.Where("type = ?", mtype)
	}

	var maintenances []models.Maintenance
	if err := q.Order("date DESC").Find(&maintenances).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, maintenances)
}

func (h *MaintenanceHandler) GetMaintenance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var maintenance models.Maintenance
	if err := h.DB.Preload("Truck").First(&maintenance, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "manutenção não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, maintenance)
}

type maintenanceRequest struct {
	TruckID     uint    `json:"truck_id"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
}

func (r *maintenanceRequest) validate() ([]string, time.Time) {
	var errs []string
	if r.TruckID == 0 {
		errs = append(errs, "truck_id é obrigatório")
	}
	if r.Description == "" {
		errs = append(errs, "description é obrigatória")
	}
	if r.Cost < 0 {
		errs = append(errs, "cost não pode ser negativo")
	}
	if r.Type != models.MaintenancePreventive && r.Type != models.MaintenanceCorrective {
		errs = append(errs, "type deve ser preventive ou corrective")
	}
	date, err := parseDate(r.Date)
	if err != nil {
		errs = append(errs, "date inválida")
	}
	return errs, date
}

func (h *MaintenanceHandler) CreateMaintenance(c echo.Context) error {
	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	errs, date := req.validate()
	if len(errs) > 0 {
		return validationError(c, errs...)
	}

	if err := h.DB.First(&models.Truck{}, req.TruckID).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "caminhão não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	maintenance := models.Maintenance{
		TruckID:     req.TruckID,
		Description: req.Description,
		Cost:        req.Cost,
		Date:        date,
		Type:        req.Type,
	}
	if err := h.DB.Create(&maintenance).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, maintenance)
}

func (h *MaintenanceHandler) UpdateMaintenance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	errs, date := req.validate()
	if len(errs) > 0 {
		return validationError(c, errs...)
	}

	var maintenance models.Maintenance
	if err := h.DB.First(&maintenance, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "manutenção não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	maintenance.TruckID = req.TruckID
	maintenance.Description = req.Description
	maintenance.Cost = req.Cost
	maintenance.Date = date
	maintenance.Type = req.Type
	if err := h.DB.Save(&maintenance).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, maintenance)
}

func (h *MaintenanceHandler) DeleteMaintenance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.Maintenance{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "manutenção não encontrada")
	}
	return c.NoContent(http.StatusNoContent)
}
