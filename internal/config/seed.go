package config

import (
	"fmt"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/hash"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const AdminRoleName = "Administrador"

// Seed upserts the permission registry, makes sure an administrator role
// holding every known key exists, and bootstraps the first admin user when
// the users table is empty.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	registry := make([]models.Permission, len(models.KnownPermissions))
	copy(registry, models.KnownPermissions)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&registry).Error; err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}

	role := models.Role{Name: AdminRoleName, Description: "Acesso total ao sistema"}
	if err := db.Where(models.Role{Name: AdminRoleName}).
		FirstOrCreate(&role).Error; err != nil {
		return fmt.Errorf("seed admin role: %w", err)
	}

	var perms []models.Permission
	if err := db.Find(&perms).Error; err != nil {
		return err
	}
	for _, p := range perms {
		rp := models.RolePermission{RoleID: role.ID, PermissionID: p.ID}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&rp).Error; err != nil {
			return fmt.Errorf("seed admin role permissions: %w", err)
		}
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || adminEmail == "" || adminPassword == "" {
		return nil
	}

	pwHash, err := hash.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Administrador",
		Email:        adminEmail,
		PasswordHash: pwHash,
		Status:       models.StatusActive,
		RoleID:       &role.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
