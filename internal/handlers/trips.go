package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/service/search"
)

type TripHandler struct {
	DB    *gorm.DB
	Fleet *FleetSideEffects
}

func tripDoc(trip models.Trip) search.Document {
	return search.Document{
		Kind:        "trip",
		ID:          trip.ID,
		Title:       fmt.Sprintf("%s → %s", trip.Origin, trip.Destination),
		Description: trip.Status,
	}
}

func (h *TripHandler) ListTrips(c echo.Context) error {
	q := h.DB.Model(&models.Trip{}).Preload("Truck").Preload("Employee")
	if truckID := c.QueryParam("truckId"); truckID != "" {
		q = q.Where("truck_id = ?", truckID)
	}
	if employeeID := c.QueryParam("employeeId"); employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	if status := c.QueryParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var trips []models.Trip
	if err := q.Order("start_date DESC").Find(&trips).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, trips)
}

func (h *TripHandler) GetTrip(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var trip models.Trip
	if err := h.DB.Preload("Truck").Preload("Employee").First(&trip, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "viagem não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, trip)
}

type tripRequest struct {
	TruckID      uint    `json:"truck_id"`
	EmployeeID   uint    `json:"employee_id"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Distance     float64 `json:"distance"`
	FreightValue float64 `json:"freight_value"`
	Status       string  `json:"status"`
}

func (r *tripRequest) validate() ([]string, time.Time, *time.Time) {
	var errs []string
	if r.TruckID == 0 {
		errs = append(errs, "truck_id é obrigatório")
	}
	if r.EmployeeID == 0 {
		errs = append(errs, "employee_id é obrigatório")
	}
	if r.Origin == "" || r.Destination == "" {
		errs = append(errs, "origin e destination são obrigatórios")
	}
	if r.Distance < 0 {
		errs = append(errs, "distance não pode ser negativa")
	}
	if r.FreightValue < 0 {
		errs = append(errs, "freight_value não pode ser negativo")
	}

	start, err := parseDate(r.StartDate)
	if err != nil {
		errs = append(errs, "start_date inválida")
	}

	var end *time.Time
	if r.EndDate != "" {
		e, err := parseDate(r.EndDate)
		if err != nil {
			errs = append(errs, "end_date inválida")
		} else if e.Before(start) {
			errs = append(errs, "end_date anterior a start_date")
		} else {
			end = &e
		}
	}
	return errs, start, end
}

func (h *TripHandler) CreateTrip(c echo.Context) error {
	var req tripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	errs, start, end := req.validate()
	if len(errs) > 0 {
		return validationError(c, errs...)
	}

	if err := h.DB.First(&models.Truck{}, req.TruckID).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "caminhão não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := h.DB.First(&models.Employee{}, req.EmployeeID).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "funcionário não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	status := req.Status
	if status == "" {
		status = "in_progress"
	}

	trip := models.Trip{
		TruckID:      req.TruckID,
		EmployeeID:   req.EmployeeID,
		Origin:       req.Origin,
		Destination:  req.Destination,
		StartDate:    start,
		EndDate:      end,
		Distance:     req.Distance,
		FreightValue: req.FreightValue,
		Status:       status,
	}
	if err := h.DB.Create(&trip).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Fleet.publish(c, map[string]interface{}{
		"type":        "trip_created",
		"id":          trip.ID,
		"origin":      trip.Origin,
		"destination": trip.Destination,
	})
	h.Fleet.indexDoc(c, tripDoc(trip))

	return c.JSON(http.StatusCreated, trip)
}

func (h *TripHandler) UpdateTrip(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req tripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	errs, start, end := req.validate()
	if len(errs) > 0 {
		return validationError(c, errs...)
	}

	var trip models.Trip
	if err := h.DB.First(&trip, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "viagem não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	trip.TruckID = req.TruckID
	trip.EmployeeID = req.EmployeeID
	trip.Origin = req.Origin
	trip.Destination = req.Destination
	trip.StartDate = start
	trip.EndDate = end
	trip.Distance = req.Distance
	trip.FreightValue = req.FreightValue
	if req.Status != "" {
		trip.Status = req.Status
	}
	if err := h.DB.Save(&trip).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Fleet.publish(c, map[string]interface{}{
		"type": "trip_updated",
		"id":   trip.ID,
	})
	h.Fleet.indexDoc(c, tripDoc(trip))

	return c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) DeleteTrip(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.Trip{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "viagem não encontrada")
	}

	h.Fleet.publish(c, map[string]interface{}{
		"type": "trip_deleted",
		"id":   id,
	})
	h.Fleet.removeDoc(c, "trip", id)

	return c.NoContent(http.StatusNoContent)
}
