package repository

import (
	"ero_shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows List results. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID uint
	Search     string
	Ordering   string // price, -price, created_at, -created_at, sales_count, -sales_count
}

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetByIDForUpdate(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	List(filter ProductFilter) ([]models.Product, error)
	BestSellers(limit int) ([]models.Product, error)
	Update(product *models.Product) error
	AdjustStock(id uint, stockDelta, salesDelta int) error
	IncrementViews(id uint) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) ProductRepository
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDForUpdate locks the product row for the rest of the current
// transaction so concurrent checkouts against the same product serialize.
// SQLite has no row locks; its writes are serialized by the engine anyway.
func (r *productRepository) GetByIDForUpdate(id uint) (*models.Product, error) {
	q := r.db
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var product models.Product
	err := q.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetBySlug loads the detail view of a product, including its image gallery.
func (r *productRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Where("slug = ?", slug).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(filter ProductFilter) ([]models.Product, error) {
	q := r.db.Where("is_available = ?", true)
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	switch filter.Ordering {
	case "price":
		q = q.Order("price_cameroon asc")
	case "-price":
		q = q.Order("price_cameroon desc")
	case "sales_count":
		q = q.Order("sales_count asc")
	case "-sales_count":
		q = q.Order("sales_count desc")
	case "created_at":
		q = q.Order("created_at asc")
	default:
		q = q.Order("created_at desc")
	}

	var products []models.Product
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepository) BestSellers(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("is_available = ?", true).
		Order("sales_count desc").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// AdjustStock applies relative stock and sales counter changes in one update.
func (r *productRepository) AdjustStock(id uint, stockDelta, salesDelta int) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock + ?", stockDelta),
			"sales_count": gorm.Expr("sales_count + ?", salesDelta),
		}).Error
}

func (r *productRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}
