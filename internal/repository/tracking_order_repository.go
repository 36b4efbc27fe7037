package repository

import (
	"ero_shop/internal/models"

	"gorm.io/gorm"
)

type TrackingOrderRepository interface {
	Create(order *models.TrackingOrder) error
	GetByIDForUser(id, userID uint) (*models.TrackingOrder, error)
	GetByUserID(userID uint) ([]models.TrackingOrder, error)
	Update(order *models.TrackingOrder) error
}

type trackingOrderRepository struct {
	db *gorm.DB
}

func NewTrackingOrderRepository(db *gorm.DB) TrackingOrderRepository {
	return &trackingOrderRepository{db: db}
}

func (r *trackingOrderRepository) Create(order *models.TrackingOrder) error {
	return r.db.Create(order).Error
}

func (r *trackingOrderRepository) GetByIDForUser(id, userID uint) (*models.TrackingOrder, error) {
	var order models.TrackingOrder
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *trackingOrderRepository) GetByUserID(userID uint) ([]models.TrackingOrder, error) {
	var orders []models.TrackingOrder
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (r *trackingOrderRepository) Update(order *models.TrackingOrder) error {
	return r.db.Save(order).Error
}
