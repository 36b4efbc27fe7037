package main

import (
	"fmt"
	"log"
	"strings"

	"ero_shop/internal/config"
	"ero_shop/internal/database"
	"ero_shop/internal/migrations"
	"ero_shop/internal/models"
	"ero_shop/internal/repository"

	"github.com/shopspring/decimal"
)

type seedProduct struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	Image       string
}

func slugify(name string) string {
	s := strings.ToLower(name)
	replacer := strings.NewReplacer(
		"é", "e", "è", "e", "ê", "e", "à", "a", "ç", "c", "ô", "o", "û", "u",
		" ", "-", "\"", "", "'", "-", "&", "et", ".", "", ",", "",
	)
	s = replacer.Replace(s)
	return strings.Trim(s, "-")
}

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	seeds := map[string][]seedProduct{
		"Électronique & Smartphones": {
			{
				Name:        "Smartphone Android 6.5\" 128GB",
				Description: "Smartphone Android dernière génération, écran 6.5 pouces, 128GB de stockage, double SIM, caméra 48MP.",
				Price:       75000,
				Stock:       50,
				Image:       "products/smartphone-android.jpg",
			},
			{
				Name:        "Écouteurs Bluetooth Sans Fil",
				Description: "Écouteurs Bluetooth 5.0 avec boîtier de charge, autonomie 24h, qualité sonore premium.",
				Price:       8500,
				Stock:       100,
				Image:       "products/ecouteurs-bluetooth.jpg",
			},
			{
				Name:        "Power Bank 20000mAh",
				Description: "Batterie externe haute capacité 20000mAh, charge rapide, 2 ports USB.",
				Price:       12000,
				Stock:       75,
				Image:       "products/power-bank.jpg",
			},
		},
		"Mode & Vêtements": {
			{
				Name:        "Baskets Sport Unisexe",
				Description: "Baskets confortables et résistantes, semelle antidérapante, disponibles en plusieurs tailles.",
				Price:       15000,
				Stock:       60,
				Image:       "products/baskets-sport.jpg",
			},
			{
				Name:        "Montre Connectée Fitness",
				Description: "Montre intelligente avec suivi d'activité, fréquence cardiaque et notifications.",
				Price:       18000,
				Stock:       40,
				Image:       "products/montre-connectee.jpg",
			},
		},
	}

	for categoryName, products := range seeds {
		categorySlug := slugify(categoryName)
		category, err := categoryRepo.GetBySlug(categorySlug)
		if err != nil {
			category = &models.Category{
				Name:     categoryName,
				Slug:     categorySlug,
				IsActive: true,
			}
			if err := categoryRepo.Create(category); err != nil {
				log.Fatalf("Failed to create category %s: %v", categoryName, err)
			}
			fmt.Printf("Created category: %s\n", category.Name)
		}

		for _, seed := range products {
			slug := slugify(seed.Name)
			if _, err := productRepo.GetBySlug(slug); err == nil {
				continue
			}
			product := &models.Product{
				Name:          seed.Name,
				Slug:          slug,
				Description:   seed.Description,
				CategoryID:    category.ID,
				PriceCameroon: decimal.NewFromInt(seed.Price),
				Stock:         seed.Stock,
				IsAvailable:   true,
				MainImage:     seed.Image,
			}
			if err := productRepo.Create(product); err != nil {
				log.Fatalf("Failed to create product %s: %v", seed.Name, err)
			}
			fmt.Printf("Created product: %s (%d FCFA)\n", product.Name, seed.Price)
		}
	}

	fmt.Println("Database initialized successfully!")
}
