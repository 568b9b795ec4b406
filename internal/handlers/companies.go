package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/service/search"
)

type CompanyHandler struct {
	DB    *gorm.DB
	Fleet *FleetSideEffects
}

func companyDoc(company models.Company) search.Document {
	return search.Document{
		Kind:        "company",
		ID:          company.ID,
		Title:       company.Name,
		Description: strings.TrimSpace(company.CNPJ + " " + company.Address),
	}
}

func (h *CompanyHandler) ListCompanies(c echo.Context) error {
	q := h.DB.Model(&models.Company{})
	if s := c.QueryParam("search"); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var companies []models.Company
	if err := q.Order("name ASC").Find(&companies).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) GetCompany(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var company models.Company
	if err := h.DB.First(&company, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "empresa não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		CNPJ    string `json:"cnpj"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.CNPJ == "" {
		return validationError(c, "name e cnpj são obrigatórios")
	}

	company := models.Company{
		Name:    req.Name,
		CNPJ:    req.CNPJ,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := h.DB.Create(&company).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "CNPJ já cadastrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Fleet.publish(c, map[string]interface{}{
		"type": "company_created",
		"id":   company.ID,
		"name": company.Name,
	})
	h.Fleet.indexDoc(c, companyDoc(company))

	return c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) UpdateCompany(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name    string `json:"name"`
		CNPJ    string `json:"cnpj"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.CNPJ == "" {
		return validationError(c, "name e cnpj são obrigatórios")
	}

	var company models.Company
	if err := h.DB.First(&company, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "empresa não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	company.Name = req.Name
	company.CNPJ = req.CNPJ
	company.Address = req.Address
	company.Phone = req.Phone
	if err := h.DB.Save(&company).Error; err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "CNPJ já cadastrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Fleet.publish(c, map[string]interface{}{
		"type": "company_updated",
		"id":   company.ID,
		"name": company.Name,
	})
	h.Fleet.indexDoc(c, companyDoc(company))

	return c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) DeleteCompany(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var company models.Company
	if err := h.DB.First(&company, id).Error; err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "empresa não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var employees, trucks, entries int64
	h.DB.Model(&models.Employee{}).Where("company_id = ?", id).Count(&employees)
	h.DB.Model(&models.Truck{}).Where("company_id = ?", id).Count(&trucks)
	h.DB.Model(&models.FinancialEntry{}).Where("company_id = ?", id).Count(&entries)
	if employees+trucks+entries > 0 {
		return echo.NewHTTPError(http.StatusConflict, "empresa possui registros vinculados")
	}

	if err := h.DB.Delete(&models.Company{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Fleet.publish(c, map[string]interface{}{
		"type": "company_deleted",
		"id":   id,
	})
	h.Fleet.removeDoc(c, "company", id)

	return c.NoContent(http.StatusNoContent)
}
