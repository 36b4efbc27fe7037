package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem freezes the product name, image and unit price at the time of
// the order. ProductID is nullable on purpose: the product row may be deleted
// later and the snapshot must survive it.
type OrderItem struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	OrderID   uint  `json:"order_id" gorm:"not null;index"`
	ProductID *uint `json:"product_id" gorm:"index"`

	ProductName  string          `json:"product_name" gorm:"not null"`
	ProductImage string          `json:"product_image"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity     int             `json:"quantity" gorm:"not null;default:1"`
	Subtotal     decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`

	CreatedAt time.Time `json:"created_at"`
}

// ComputeSubtotal recomputes Subtotal from Price and Quantity. Subtotal is
// never settable on its own.
func (i *OrderItem) ComputeSubtotal() {
	i.Subtotal = i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
