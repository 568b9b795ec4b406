package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

type EmployeeHandler struct {
	DB *gorm.DB
}

func (h *EmployeeHandler) ListEmployees(c echo.Context) error {
	q := h.DB.Model(&models.Employee{}).Preload("Company")
	if s := c.QueryParam("search"); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if companyID := c.QueryParam("companyId"); companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	if status := c.QueryParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var employees []models.Employee
	if err := q.Order("name ASC").Find(&employees).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) GetEmployee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var employee models.Employee
	if err := h.DB.Preload("Company").First(&employee, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "funcionário não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, employee)
}

type employeeRequest struct {
	Name       string  `json:"name"`
	Document   string  `json:"document"`
	RoleTitle  string  `json:"role_title"`
	CompanyID  uint    `json:"company_id"`
	BaseSalary float64 `json:"base_salary"`
	Status     string  `json:"status"`
}

func (r *employeeRequest) validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name é obrigatório")
	}
	if r.Document == "" {
		errs = append(errs, "document é obrigatório")
	}
	if r.CompanyID == 0 {
		errs = append(errs, "company_id é obrigatório")
	}
	if r.BaseSalary < 0 {
		errs = append(errs, "base_salary não pode ser negativo")
	}
	return errs
}

func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	var req employeeRequest
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

	employee := models.Employee{
		Name:       req.Name,
		Document:   req.Document,
		RoleTitle:  req.RoleTitle,
		CompanyID:  req.CompanyID,
		BaseSalary: req.BaseSalary,
		Status:     status,
	}
	if err := h.DB.Create(&employee).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "documento já cadastrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) UpdateEmployee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationError(c, errs...)
	}

	var employee models.Employee
	if err := h.DB.First(&employee, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "funcionário não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	employee.Name = req.Name
	employee.Document = req.Document
	employee.RoleTitle = req.RoleTitle
	employee.CompanyID = req.CompanyID
	employee.BaseSalary = req.BaseSalary
	if req.Status != "" {
		employee.Status = req.Status
	}
	if err := h.DB.Save(&employee).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "documento já cadastrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var trips int64
	if err := h.DB.Model(&models.Trip{}).Where("employee_id = ?", id).Count(&trips).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if trips > 0 {
		return echo.NewHTTPError(http.StatusConflict, "funcionário possui viagens vinculadas")
	}

	res := h.DB.Delete(&models.Employee{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "funcionário não encontrado")
	}
	return c.NoContent(http.StatusNoContent)
}
