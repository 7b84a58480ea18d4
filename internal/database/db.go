package database

import (
	"log"
	"os"
	"time"

	"robfu/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	createDefaultSuperadmin()
	seedDefaultUsers()
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Study{},
		&models.Document{},
		&models.Observation{},
		&models.PurchaseOrder{},
		&models.Notification{},
		&models.AuditLog{},
	)
}

// superadmin only from config, never via the register endpoint
func createDefaultSuperadmin() {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@robfu.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleSuperadmin).
		Count(&count).Error; err != nil {
		log.Printf("failed to check superadmin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default superadmin password: %v", err)
		return
	}

	admin := models.User{
		UserID:       uuid.NewString(),
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleSuperadmin,
		Active:       true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to create default superadmin: %v", err)
		return
	}

	log.Printf("created default superadmin: %s (password: %s)", email, password)
}

// one demo account per pipeline role
func seedDefaultUsers() {
	type seedUser struct {
		Name     string
		Email    string
		Password string
		Role     models.UserRole
	}

	users := []seedUser{
		{Name: "Demo Designer", Email: "designer@robfu.local", Password: "Design123!", Role: models.RoleDesigner},
		{Name: "Demo Chief", Email: "chief@robfu.local", Password: "Chief123!", Role: models.RoleManufacturingChief},
		{Name: "Demo Purchasing", Email: "purchasing@robfu.local", Password: "Purch123!", Role: models.RolePurchasing},
		{Name: "Demo Warehouse", Email: "warehouse@robfu.local", Password: "Wareh123!", Role: models.RoleWarehouse},
	}

	for _, u := range users {
		var count int64
		if err := DB.Model(&models.User{}).
			Where("email = ?", u.Email).
			Count(&count).Error; err != nil {
			log.Printf("failed to check seed user %s: %v", u.Email, err)
			continue
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("failed to hash password for %s: %v", u.Email, err)
			continue
		}

		user := models.User{
			UserID:       uuid.NewString(),
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         u.Role,
			Active:       true,
		}

		if err := DB.Create(&user).Error; err != nil {
			log.Printf("failed to create seed user %s: %v", u.Email, err)
			continue
		}

		log.Printf("created seed user: %s (role=%s, password=%s)", u.Email, u.Role, u.Password)
	}
}
