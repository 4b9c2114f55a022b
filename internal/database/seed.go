package database

import (
	"log"
	"os"

	"impulso/internal/domain"
	"impulso/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the initial admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no admin exists yet.
func SeedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: %v", err)
		return
	}
	u := &models.User{Email: email, PasswordHash: string(hash), Role: domain.RoleAdmin}
	if err := db.Create(u).Error; err != nil {
		log.Printf("seed admin: %v", err)
		return
	}
	log.Printf("seeded admin account %s", email)
}

func intPtr(v int) *int       { return &v }
func centsPtr(v int64) *int64 { return &v }

// SeedCatalog inserts the verticals and their default promotional slots when
// the tables are empty. Slot pricing and capacity are administered later; the
// seed gives every vertical the three placements the marketplace apps render.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Vertical{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	verticals := []models.Vertical{
		{Key: domain.VerticalAutos, Title: "Vehículos", IsActive: true},
		{Key: domain.VerticalProperties, Title: "Propiedades", IsActive: true},
		{Key: domain.VerticalStores, Title: "Tiendas", IsActive: true},
		{Key: domain.VerticalFood, Title: "Comida", IsActive: true},
	}
	if err := db.Create(&verticals).Error; err != nil {
		return err
	}

	var slots []models.Slot
	for _, v := range verticals {
		slots = append(slots,
			models.Slot{
				VerticalID:          v.ID,
				Key:                 domain.SlotHomeMain,
				Title:               "Portada principal",
				Placement:           "home_carousel",
				MaxActive:           intPtr(10),
				DefaultDurationDays: intPtr(15),
				PriceCents:          centsPtr(1490000),
				IsActive:            true,
			},
			models.Slot{
				VerticalID:          v.ID,
				Key:                 domain.SlotVentaTab,
				Title:               "Destacado en categoría",
				Placement:           "category_tab",
				MaxActive:           intPtr(20),
				DefaultDurationDays: intPtr(15),
				PriceCents:          centsPtr(990000),
				IsActive:            true,
			},
			models.Slot{
				VerticalID:          v.ID,
				Key:                 domain.SlotUserPage,
				Title:               "Destacado en tu perfil",
				Placement:           "profile_featured",
				DefaultDurationDays: intPtr(30),
				PriceCents:          centsPtr(490000),
				IsActive:            true,
			},
		)
	}
	if err := db.Create(&slots).Error; err != nil {
		return err
	}
	log.Printf("seeded %d verticals and %d boost slots", len(verticals), len(slots))
	return nil
}
