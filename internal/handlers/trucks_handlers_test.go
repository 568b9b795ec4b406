package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

func TestCreateTruck(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany("Transportes X", "00.000.000/0001-00")

	rec, c := env.doJSONRequest(http.MethodPost, "/trucks", map[string]interface{}{
		"plate":      "ABC1D23",
		"model_name": "Volvo FH 540",
		"year":       2020,
		"capacity":   30.5,
		"company_id": company.ID,
	})
	require.NoError(t, env.Truck.CreateTruck(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var truck models.Truck
	decodeBody(t, rec, &truck)
	require.Equal(t, "ABC1D23", truck.Plate)
	require.Equal(t, models.StatusActive, truck.Status)
}

func TestCreateTruckDuplicatePlate(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany("Transportes X", "00.000.000/0001-00")

	truck := models.Truck{Plate: "ABC1D23", ModelName: "Volvo", CompanyID: company.ID, Status: models.StatusActive}
	require.NoError(t, env.DB.Create(&truck).Error)

	_, c := env.doJSONRequest(http.MethodPost, "/trucks", map[string]interface{}{
		"plate":      "ABC1D23",
		"model_name": "Scania",
		"company_id": company.ID,
	})
	err := env.Truck.CreateTruck(c)
	requireHTTPError(t, err, http.StatusConflict, "placa já cadastrada")
}

func TestCreateTruckUnknownCompany(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/trucks", map[string]interface{}{
		"plate":      "ABC1D23",
		"model_name": "Volvo",
		"company_id": 999,
	})
	err := env.Truck.CreateTruck(c)
	requireHTTPError(t, err, http.StatusNotFound, "empresa não encontrada")
}

func TestDeleteTruckWithTrips(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany("Transportes X", "00.000.000/0001-00")

	truck := models.Truck{Plate: "ABC1D23", ModelName: "Volvo", CompanyID: company.ID, Status: models.StatusActive}
	require.NoError(t, env.DB.Create(&truck).Error)

	employee := models.Employee{Name: "João", Document: "123", CompanyID: company.ID, Status: models.StatusActive}
	require.NoError(t, env.DB.Create(&employee).Error)

	trip := models.Trip{
		TruckID:     truck.ID,
		EmployeeID:  employee.ID,
		Origin:      "São Paulo",
		Destination: "Curitiba",
		StartDate:   time.Now(),
		Status:      "in_progress",
	}
	require.NoError(t, env.DB.Create(&trip).Error)

	_, c := env.doJSONRequestID(http.MethodDelete, "/trucks/:id", truck.ID, nil)
	err := env.Truck.DeleteTruck(c)
	requireHTTPError(t, err, http.StatusConflict, "caminhão possui registros vinculados")
}

func TestGetTruckNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequestID(http.MethodGet, "/trucks/:id", 999, nil)
	err := env.Truck.GetTruck(c)
	requireHTTPError(t, err, http.StatusNotFound, "caminhão não encontrado")
}

func TestDeleteCompanyWithDependents(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany("Transportes X", "00.000.000/0001-00")

	truck := models.Truck{Plate: "ABC1D23", ModelName: "Volvo", CompanyID: company.ID, Status: models.StatusActive}
	require.NoError(t, env.DB.Create(&truck).Error)

	_, c := env.doJSONRequestID(http.MethodDelete, "/companies/:id", company.ID, nil)
	err := env.Comp.DeleteCompany(c)
	requireHTTPError(t, err, http.StatusConflict, "empresa possui registros vinculados")
}

func TestCompanyCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/companies", map[string]string{
		"name": "Transportes X",
		"cnpj": "00.000.000/0001-00",
	})
	require.NoError(t, env.Comp.CreateCompany(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var company models.Company
	decodeBody(t, rec, &company)

	rec, c = env.doJSONRequestID(http.MethodPut, "/companies/:id", company.ID, map[string]string{
		"name": "Transportes Y",
		"cnpj": "00.000.000/0001-00",
	})
	require.NoError(t, env.Comp.UpdateCompany(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSONRequestID(http.MethodDelete, "/companies/:id", company.ID, nil)
	require.NoError(t, env.Comp.DeleteCompany(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, c = env.doJSONRequestID(http.MethodGet, "/companies/:id", company.ID, nil)
	err := env.Comp.GetCompany(c)
	requireHTTPError(t, err, http.StatusNotFound, "empresa não encontrada")
}
