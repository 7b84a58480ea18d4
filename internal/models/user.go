package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleDesigner           UserRole = "designer"
	RoleManufacturingChief UserRole = "manufacturing_chief"
	RolePurchasing         UserRole = "purchasing"
	RoleWarehouse          UserRole = "warehouse"
	RoleSuperadmin         UserRole = "superadmin"
)

// WorkerRoles are the roles allowed to self-register. Superadmins are
// seeded from config only.
var WorkerRoles = []UserRole{RoleDesigner, RoleManufacturingChief, RolePurchasing, RoleWarehouse}

func IsWorkerRole(r UserRole) bool {
	for _, w := range WorkerRoles {
		if r == w {
			return true
		}
	}
	return false
}

type User struct {
	gorm.Model
	UserID       string   `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	Name         string   `gorm:"size:255;not null" json:"name"`
	Email        string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(30);not null" json:"role"`
	AvatarURL    string   `gorm:"size:255" json:"avatar_url"`
	Stars        int      `gorm:"not null;default:0" json:"stars"` // reward stars for early completions
	Active       bool     `gorm:"not null;default:true" json:"active"`
}
