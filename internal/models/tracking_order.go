package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TrackingOrder records a WhatsApp checkout: the buyer is redirected to a
// wa.me link and the sale is finalized by a human over WhatsApp, so there is
// no intermediate fulfillment state and no stock reservation.
type TrackingOrder struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	User   User `json:"-" gorm:"foreignKey:UserID"`

	ProductID *uint `json:"product_id" gorm:"index"`
	CityID    *uint `json:"city_id" gorm:"index"`

	// Snapshots taken at redirect time
	ProductName  string          `json:"product_name" gorm:"not null"`
	ProductPrice decimal.Decimal `json:"product_price" gorm:"type:decimal(10,2);not null"`
	Quantity     int             `json:"quantity" gorm:"not null;default:1"`
	CityName     string          `json:"city_name" gorm:"not null"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`

	Status string `json:"status" gorm:"default:'redirected'"` // redirected, completed, cancelled

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type TrackingStatus string

const (
	TrackingRedirected TrackingStatus = "redirected"
	TrackingCompleted  TrackingStatus = "completed"
	TrackingCancelled  TrackingStatus = "cancelled"
)
