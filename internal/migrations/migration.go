package migrations

import (
	"log"

	"ero_shop/internal/models"
	"ero_shop/internal/repository"

	"gorm.io/gorm"
)

// RunMigrations creates the schema and seeds the reference data the shop
// cannot run without (the WhatsApp cities).
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.City{},
		&models.Order{},
		&models.OrderItem{},
		&models.TrackingOrder{},
	)
	if err != nil {
		return err
	}

	if err := seedCities(db); err != nil {
		log.Printf("Warning: failed to seed cities: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// seedCities creates the default cities with their WhatsApp contact numbers.
// Existing rows are left untouched.
func seedCities(db *gorm.DB) error {
	cityRepo := repository.NewCityRepository(db)

	cities := []models.City{
		{Name: "Bafoussam", WhatsAppNumber: "237659270205", IsActive: true, DisplayOrder: 1},
		{Name: "Douala", WhatsAppNumber: "237691563244", IsActive: true, DisplayOrder: 2},
		{Name: "Yaoundé", WhatsAppNumber: "237698566659", IsActive: true, DisplayOrder: 3},
	}

	for _, city := range cities {
		if _, err := cityRepo.GetByName(city.Name); err == nil {
			continue
		}
		c := city
		if err := cityRepo.Create(&c); err != nil {
			return err
		}
		log.Printf("Seeded city %s (WhatsApp: %s)", c.Name, c.WhatsAppNumber)
	}
	return nil
}
