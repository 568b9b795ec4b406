package models

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Status       string    `gorm:"not null;default:active"  json:"status"`
	RoleID       *uint     `gorm:"index"                    json:"role_id"`
	Role         *Role     `gorm:"foreignKey:RoleID"        json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Role struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"unique;not null"          json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Permission struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Key         string `gorm:"unique;not null"          json:"key"`
	Description string `json:"description"`
}

type RolePermission struct {
	RoleID       uint       `gorm:"primaryKey"                                          json:"role_id"`
	PermissionID uint       `gorm:"primaryKey"                                          json:"permission_id"`
	Role         Role       `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"       json:"-"`
	Permission   Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE" json:"-"`
}

type AuditLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index"                    json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID"        json:"user,omitempty"`
	Action    string    `gorm:"not null;index"           json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

type Company struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	CNPJ      string    `gorm:"unique;not null"          json:"cnpj"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Employee struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"not null"                 json:"name"`
	Document   string    `gorm:"unique;not null"          json:"document"`
	RoleTitle  string    `json:"role_title"`
	CompanyID  uint      `gorm:"index;not null"           json:"company_id"`
	Company    *Company  `gorm:"foreignKey:CompanyID"     json:"company,omitempty"`
	BaseSalary float64   `json:"base_salary"`
	Status     string    `gorm:"not null;default:active"  json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type Truck struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Plate     string    `gorm:"unique;not null"          json:"plate"`
	ModelName string    `gorm:"not null"                 json:"model_name"`
	Year      int       `json:"year"`
	Capacity  float64   `json:"capacity"`
	CompanyID uint      `gorm:"index;not null"           json:"company_id"`
	Company   *Company  `gorm:"foreignKey:CompanyID"     json:"company,omitempty"`
	Status    string    `gorm:"not null;default:active"  json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Trip struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"     json:"id"`
	TruckID      uint       `gorm:"index;not null"               json:"truck_id"`
	Truck        *Truck     `gorm:"foreignKey:TruckID"           json:"truck,omitempty"`
	EmployeeID   uint       `gorm:"index;not null"               json:"employee_id"`
	Employee     *Employee  `gorm:"foreignKey:EmployeeID"        json:"employee,omitempty"`
	Origin       string     `gorm:"not null"                     json:"origin"`
	Destination  string     `gorm:"not null"                     json:"destination"`
	StartDate    time.Time  `gorm:"not null"                     json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Distance     float64    `json:"distance"`
	FreightValue float64    `json:"freight_value"`
	Status       string     `gorm:"not null;default:in_progress" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

const (
	MaintenancePreventive = "preventive"
	MaintenanceCorrective = "corrective"
)

type Maintenance struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TruckID     uint      `gorm:"index;not null"           json:"truck_id"`
	Truck       *Truck    `gorm:"foreignKey:TruckID"       json:"truck,omitempty"`
	Description string    `gorm:"not null"                 json:"description"`
	Cost        float64   `gorm:"not null"                 json:"cost"`
	Date        time.Time `gorm:"not null"                 json:"date"`
	Type        string    `gorm:"not null"                 json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	EntryTypeIncome  = "entrada"
	EntryTypeExpense = "saida"
	EntryTypeTax     = "imposto"
)

type FinancialEntry struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID   uint      `gorm:"index;not null"           json:"company_id"`
	Company     *Company  `gorm:"foreignKey:CompanyID"     json:"company,omitempty"`
	Type        string    `gorm:"not null;index"           json:"type"`
	Description string    `gorm:"not null"                 json:"description"`
	Amount      float64   `gorm:"not null"                 json:"amount"`
	Date        time.Time `gorm:"not null"                 json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

type Closing struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"               json:"id"`
	CompanyID     uint      `gorm:"not null;uniqueIndex:idx_company_month" json:"company_id"`
	Company       *Company  `gorm:"foreignKey:CompanyID"                   json:"company,omitempty"`
	Month         string    `gorm:"not null;uniqueIndex:idx_company_month" json:"month"`
	TotalEntries  float64   `json:"total_entries"`
	TotalExpenses float64   `json:"total_expenses"`
	TotalTaxes    float64   `json:"total_taxes"`
	Balance       float64   `json:"balance"`
	ProfitMargin  float64   `json:"profit_margin"`
	CreatedAt     time.Time `json:"created_at"`
}
