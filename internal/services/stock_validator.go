package services

import (
	"errors"
	"fmt"

	"ero_shop/internal/models"
	"ero_shop/internal/repository"

	"gorm.io/gorm"
)

// CheckoutItem is one (product, quantity) pair submitted at checkout.
type CheckoutItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// ValidateLine checks a single fetched product against a requested quantity.
// It has no side effects.
func ValidateLine(product *models.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: product %q", ErrInvalidQuantity, product.Name)
	}
	if !product.IsAvailable {
		return fmt.Errorf("%w: %q", ErrProductUnavailable, product.Name)
	}
	if quantity > product.Stock {
		return fmt.Errorf("%w: %q has %d left, %d requested",
			ErrInsufficientStock, product.Name, product.Stock, quantity)
	}
	return nil
}

// mergeDuplicates collapses repeated product IDs into a single line, keeping
// first-seen order. Validating each duplicate against the same pre-decrement
// stock would let the cumulative quantity exceed what is on hand.
func mergeDuplicates(items []CheckoutItem) []CheckoutItem {
	merged := make([]CheckoutItem, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// validateAndFetch runs the stock check for a whole cart. Duplicate lines are
// merged first, then each product is fetched with a row lock through the given
// (transaction-scoped) repository, so the subsequent stock decrement cannot
// race a concurrent checkout. The whole batch fails on the first offending
// item. It returns the merged lines alongside the products, index-aligned.
func validateAndFetch(products repository.ProductRepository, items []CheckoutItem) ([]CheckoutItem, []*models.Product, error) {
	if len(items) == 0 {
		return nil, nil, ErrEmptyCart
	}
	items = mergeDuplicates(items)

	fetched := make([]*models.Product, 0, len(items))
	for _, item := range items {
		product, err := products.GetByIDForUpdate(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, fmt.Errorf("%w: id %d", ErrProductNotFound, item.ProductID)
			}
			return nil, nil, err
		}
		if err := ValidateLine(product, item.Quantity); err != nil {
			return nil, nil, err
		}
		fetched = append(fetched, product)
	}
	return items, fetched, nil
}
