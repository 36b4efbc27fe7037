package services

import (
	"errors"
	"log"

	"ero_shop/internal/models"
	"ero_shop/internal/repository"

	"gorm.io/gorm"
)

type CatalogService interface {
	ListProducts(filter repository.ProductFilter) ([]models.Product, error)
	GetProduct(slug string) (*models.Product, error)
	Featured() ([]models.Product, error)
	BestSellers() ([]models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	ListCategories() ([]models.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *catalogService) ListProducts(filter repository.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(filter)
}

// GetProduct looks a product up by slug and bumps its view counter.
func (s *catalogService) GetProduct(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.productRepo.IncrementViews(product.ID); err != nil {
		log.Printf("Warning: failed to increment views for product %d: %v", product.ID, err)
	}
	product.ViewsCount++
	return product, nil
}

func (s *catalogService) Featured() ([]models.Product, error) {
	return s.productRepo.BestSellers(10)
}

func (s *catalogService) BestSellers() ([]models.Product, error) {
	return s.productRepo.BestSellers(20)
}

func (s *catalogService) CreateProduct(product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.productRepo.Create(product)
}

func (s *catalogService) UpdateProduct(product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.productRepo.Update(product)
}

func validateProduct(product *models.Product) error {
	if !product.PriceCameroon.IsPositive() {
		return ErrInvalidPrice
	}
	if product.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (s *catalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetActiveRoots()
}
