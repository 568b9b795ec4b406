package models

// KnownPermissions is the seed registry of permission keys the routes are
// gated on. Keys are free-form strings grouped by module.action convention;
// new keys may still be created at runtime through role management.
var KnownPermissions = []Permission{
	{Key: "users.manage", Description: "Gerenciar usuários, perfis e permissões"},
	{Key: "audit.view", Description: "Consultar registros de auditoria"},
	{Key: "companies.view", Description: "Visualizar empresas"},
	{Key: "companies.manage", Description: "Gerenciar empresas"},
	{Key: "employees.view", Description: "Visualizar funcionários"},
	{Key: "employees.manage", Description: "Gerenciar funcionários"},
	{Key: "trucks.view", Description: "Visualizar caminhões"},
	{Key: "trucks.manage", Description: "Gerenciar caminhões"},
	{Key: "trips.view", Description: "Visualizar viagens"},
	{Key: "trips.manage", Description: "Gerenciar viagens"},
	{Key: "maintenance.view", Description: "Visualizar manutenções"},
	{Key: "maintenance.manage", Description: "Gerenciar manutenções"},
	{Key: "financial.view", Description: "Visualizar lançamentos financeiros"},
	{Key: "financial.create", Description: "Criar lançamentos financeiros"},
	{Key: "financial.manage", Description: "Gerenciar lançamentos e fechamentos"},
	{Key: "reports.view", Description: "Visualizar relatórios"},
}
