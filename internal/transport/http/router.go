package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/handlers"
	mwauth "github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/middleware/auth"
)

type Deps struct {
	Gate        *mwauth.Gate
	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Roles       *handlers.RoleHandler
	Audit       *handlers.AuditHandler
	Companies   *handlers.CompanyHandler
	Employees   *handlers.EmployeeHandler
	Trucks      *handlers.TruckHandler
	Trips       *handlers.TripHandler
	Maintenance *handlers.MaintenanceHandler
	Financial   *handlers.FinancialHandler
	Reports     *handlers.ReportHandler
	Search      *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)

	authed := v1.Group("", d.Gate.RequireLogin)
	authed.GET("/me", d.Auth.Me)
	authed.GET("/search", d.Search.Search)

	admin := authed.Group("", d.Gate.RequirePermission("users.manage"))
	admin.GET("/permissions", d.Roles.ListPermissions)
	admin.GET("/roles", d.Roles.ListRoles)
	admin.POST("/roles", d.Roles.CreateRole)
	admin.PUT("/roles/:id", d.Roles.UpdateRole)
	admin.DELETE("/roles/:id", d.Roles.DeleteRole)
	admin.PUT("/roles/:id/permissions", d.Roles.SetRolePermissions)
	admin.GET("/users", d.Users.ListUsers)
	admin.POST("/users", d.Users.CreateUser)
	admin.PUT("/users/:id", d.Users.UpdateUser)
	admin.PATCH("/users/:id/status", d.Users.SetUserStatus)

	authed.GET("/audit-logs", d.Audit.ListAuditLogs, d.Gate.RequirePermission("audit.view"))

	companies := authed.Group("/companies")
	companies.GET("", d.Companies.ListCompanies, d.Gate.RequirePermission("companies.view"))
	companies.GET("/:id", d.Companies.GetCompany, d.Gate.RequirePermission("companies.view"))
	companies.POST("", d.Companies.CreateCompany, d.Gate.RequirePermission("companies.manage"))
	companies.PUT("/:id", d.Companies.UpdateCompany, d.Gate.RequirePermission("companies.manage"))
	companies.DELETE("/:id", d.Companies.DeleteCompany, d.Gate.RequirePermission("companies.manage"))

	employees := authed.Group("/employees")
	employees.GET("", d.Employees.ListEmployees, d.Gate.RequirePermission("employees.view"))
	employees.GET("/:id", d.Employees.GetEmployee, d.Gate.RequirePermission("employees.view"))
	employees.POST("", d.Employees.CreateEmployee, d.Gate.RequirePermission("employees.manage"))
	employees.PUT("/:id", d.Employees.UpdateEmployee, d.Gate.RequirePermission("employees.manage"))
	employees.DELETE("/:id", d.Employees.DeleteEmployee, d.Gate.RequirePermission("employees.manage"))

	trucks := authed.Group("/trucks")
	trucks.GET("", d.Trucks.ListTrucks, d.Gate.RequirePermission("trucks.view"))
	trucks.GET("/:id", d.Trucks.GetTruck, d.Gate.RequirePermission("trucks.view"))
	trucks.POST("", d.Trucks.CreateTruck, d.Gate.RequirePermission("trucks.manage"))
	trucks.PUT("/:id", d.Trucks.UpdateTruck, d.Gate.RequirePermission("trucks.manage"))
	trucks.DELETE("/:id", d.Trucks.DeleteTruck, d.Gate.RequirePermission("trucks.manage"))

	trips := authed.Group("/trips")
	trips.GET("", d.Trips.ListTrips, d.Gate.RequirePermission("trips.view"))
	trips.GET("/:id", d.Trips.GetTrip, d.Gate.RequirePermission("trips.view"))
	trips.POST("", d.Trips.CreateTrip, d.Gate.RequirePermission("trips.manage"))
	trips.PUT("/:id", d.Trips.UpdateTrip, d.Gate.RequirePermission("trips.manage"))
	trips.DELETE("/:id", d.Trips.DeleteTrip, d.Gate.RequirePermission("trips.manage"))

	maintenance := authed.Group("/maintenances")
	maintenance.GET("", d.Maintenance.ListMaintenances, d.Gate.RequirePermission("maintenance.view"))
	maintenance.GET("/:id", d.Maintenance.GetMaintenance, d.Gate.RequirePermission("maintenance.view"))
	maintenance.POST("", d.Maintenance.CreateMaintenance, d.Gate.RequirePermission("maintenance.manage"))
	maintenance.PUT("/:id", d.Maintenance.UpdateMaintenance, d.Gate.RequirePermission("maintenance.manage"))
	maintenance.DELETE("/:id", d.Maintenance.DeleteMaintenance, d.Gate.RequirePermission("maintenance.manage"))

	financial := authed.Group("/financial")
	financial.GET("/entries", d.Financial.ListEntries, d.Gate.RequirePermission("financial.view"))
	financial.POST("/entries", d.Financial.CreateEntry, d.Gate.RequirePermission("financial.create"))
	financial.PUT("/entries/:id", d.Financial.UpdateEntry, d.Gate.RequirePermission("financial.manage"))
	financial.DELETE("/entries/:id", d.Financial.DeleteEntry, d.Gate.RequirePermission("financial.manage"))

	closings := authed.Group("/closings")
	closings.GET("", d.Financial.ListClosings, d.Gate.RequirePermission("financial.view"))
	closings.GET("/summary", d.Financial.Summary, d.Gate.RequirePermission("financial.view"))
	closings.POST("", d.Financial.CreateClosing, d.Gate.RequirePermission("financial.manage"))
	closings.DELETE("/:id", d.Financial.DeleteClosing, d.Gate.RequirePermission("financial.manage"))

	authed.GET("/reports/overview", d.Reports.Overview, d.Gate.RequirePermission("reports.view"))
}
