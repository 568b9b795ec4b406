package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/service/search"
)

type TruckHandler struct {
	DB    *gorm.DB
	Fleet *FleetSideEffects
}

func truckDoc(truck models.Truck) search.Document {
	return search.Document{
		Kind:        "truck",
		ID:          truck.ID,
		Title:       truck.Plate,
		Description: fmt.Sprintf("%s %d", truck.ModelName, truck.Year),
	}
}

func (h *TruckHandler) ListTrucks(c echo.Context) error {
	q := h.DB.Model(&models.Truck{}).Preload("Company")
	if s := c.QueryParam("search"); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(plate) LIKE ? OR LOWER(model_name) LIKE ?", like, like)
	}
	if companyID := c.QueryParam("companyId"); companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	if status := c.QueryParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var trucks []models.Truck
	if err := q.Order("plate ASC").Find(&trucks).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, trucks)
}

func (h *TruckHandler) GetTruck(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var truck models.Truck
	if err := h.DB.Preload("Company").First(&truck, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "caminhão não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, truck)
}

type truckRequest struct {
	Plate     string  `json:"plate"`
	ModelName string  `json:"model_name"`
	Year      int     `json:"year"`
	Capacity  float64 `json:"capacity"`
	CompanyID uint    `json:"company_id"`
	Status    string  `json:"status"`
}

func (r *truckRequest) validate() []string {
	var errs []string
	if r.Plate == "" {
		errs = append(errs, "plate é obrigatório")
	}
	if r.ModelName == "" {
		errs = append(errs, "model_name é obrigatório")
	}
	if r.CompanyID == 0 {
		errs = append(errs, "company_id é obrigatório")
	}
	if r.Year != 0 && (r.Year < 1950 || r.Year > time.Now().Year()+1) {
		errs = append(errs, "year inválido")
	}
	if r.Capacity < 0 {
		errs = append(errs, "capacity não pode ser negativa")
	}
	return errs
}

func (h *TruckHandler) CreateTruck(c echo.Context) error {
	var req truckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationError(c, errs...)
	}

	if err := h.DB.First(&models.Company{}, req.CompanyID).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "empresa não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	truck := models.Truck{
		Plate:     req.Plate,
		ModelName: req.ModelName,
		Year:      req.Year,
		Capacity:  req.Capacity,
		CompanyID: req.CompanyID,
		Status:    status,
	}
	if err := h.DB.Create(&truck).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "placa já cadastrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Fleet.publish(c, map[string]interface{}{
		"type":  "truck_created",
		"id":    truck.ID,
		"plate": truck.Plate,
	})
	h.Fleet.indexDoc(c, truckDoc(truck))

	return c.JSON(http.StatusCreated, truck)
}

func (h *TruckHandler) UpdateTruck(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req truckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationError(c, errs...)
	}

	var truck models.Truck
	if err := h.DB.First(&truck, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "caminhão não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	truck.Plate = req.Plate
	truck.ModelName = req.ModelName
	truck.Year = req.Year
	truck.Capacity = req.Capacity
	truck.CompanyID = req.CompanyID
	if req.Status != "" {
		truck.Status = req.Status
	}
	if err := h.DB.Save(&truck).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "placa já cadastrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Fleet.publish(c, map[string]interface{}{
		"type":  "truck_updated",
		"id":    truck.ID,
		"plate": truck.Plate,
	})
	h.Fleet.indexDoc(c, truckDoc(truck))

	return c.JSON(http.StatusOK, truck)
}

func (h *TruckHandler) DeleteTruck(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var truck models.Truck
	if err := h.DB.First(&truck, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "caminhão não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var trips, maintenances int64
	h.DB.Model(&models.Trip{}).Where("truck_id = ?", id).Count(&trips)
	h.DB.Model(&models.Maintenance{}).Where("truck_id = ?", id).Count(&maintenances)
	if trips+maintenances > 0 {
		return echo.NewHTTPError(http.StatusConflict, "caminhão possui registros vinculados")
	}

	if err := h.DB.Delete(&models.Truck{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Fleet.publish(c, map[string]interface{}{
		"type": "truck_deleted",
		"id":   id,
	})
	h.Fleet.removeDoc(c, "truck", id)

	return c.NoContent(http.StatusNoContent)
}
