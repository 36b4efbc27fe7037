package repository

import (
	"ero_shop/internal/models"

	"gorm.io/gorm"
)

type CityRepository interface {
	Create(city *models.City) error
	GetByID(id uint) (*models.City, error)
	GetByName(name string) (*models.City, error)
	GetActive() ([]models.City, error)
	Update(city *models.City) error
}

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) Create(city *models.City) error {
	return r.db.Create(city).Error
}

func (r *cityRepository) GetByID(id uint) (*models.City, error) {
	var city models.City
	err := r.db.First(&city, id).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) GetByName(name string) (*models.City, error) {
	var city models.City
	err := r.db.Where("name = ?", name).First(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) GetActive() ([]models.City, error) {
	var cities []models.City
	err := r.db.Where("is_active = ?", true).
		Order("display_order asc").
		Find(&cities).Error
	return cities, err
}

func (r *cityRepository) Update(city *models.City) error {
	return r.db.Save(city).Error
}
