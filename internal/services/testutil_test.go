package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"ero_shop/internal/models"
	"ero_shop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.City{},
		&models.Order{},
		&models.OrderItem{},
		&models.TrackingOrder{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Username:     "amina",
		Email:        "amina@example.com",
		PasswordHash: "x",
		Phone:        "237690000001",
		City:         "Yaoundé",
		UserType:     string(models.UserClient),
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{Name: "Électronique", Slug: "electronique", IsActive: true}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, price int64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          name,
		Slug:          strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		CategoryID:    categoryID,
		PriceCameroon: decimal.NewFromInt(price),
		Stock:         stock,
		IsAvailable:   true,
		MainImage:     "products/" + name + ".jpg",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCity(t *testing.T, db *gorm.DB, name, number string, active bool) *models.City {
	t.Helper()

	city := &models.City{Name: name, WhatsAppNumber: number, IsActive: active}
	require.NoError(t, db.Create(city).Error)
	return city
}

func newTestOrderService(db *gorm.DB) OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewOrderItemRepository(db),
		repository.NewProductRepository(db),
		nil, // no cache in tests
		decimal.NewFromInt(2000),
		time.Minute,
	)
}

func testDelivery() DeliveryInfo {
	return DeliveryInfo{
		Address: "Quartier Bastos, Rue 1234",
		City:    "Yaoundé",
		Phone:   "237690000001",
	}
}
