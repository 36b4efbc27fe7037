package repository

import (
	"ero_shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusCount is one row of the per-status aggregate used by order stats.
type StatusCount struct {
	Status string
	Count  int64
}

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByIDForUser(id, userID uint) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	CountByStatus(userID uint) ([]StatusCount, error)
	Update(order *models.Order) error
	WithTx(tx *gorm.DB) OrderRepository
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByIDForUser scopes the lookup to the owning user: another user's order
// is simply not found.
func (r *orderRepository) GetByIDForUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CountByStatus(userID uint) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&counts).Error
	return counts, err
}

// Update persists the order header. Line items are immutable snapshots and
// are never written through here.
func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Omit(clause.Associations).Save(order).Error
}
