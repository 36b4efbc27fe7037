package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"not null"`
	Slug        string   `json:"slug" gorm:"unique;not null"`
	Description string   `json:"description" gorm:"type:text"`
	CategoryID  uint     `json:"category_id" gorm:"not null;index"`
	Category    Category `json:"category" gorm:"foreignKey:CategoryID"`

	// Prices in FCFA
	PriceChina    decimal.Decimal `json:"price_china" gorm:"type:decimal(10,2)"`
	PriceCameroon decimal.Decimal `json:"price_cameroon" gorm:"type:decimal(10,2);not null"`

	Stock       int    `json:"stock" gorm:"not null;default:0"`
	IsAvailable bool   `json:"is_available" gorm:"default:true"`
	MainImage   string `json:"main_image"`

	Weight     decimal.Decimal `json:"weight" gorm:"type:decimal(6,2)"`
	Dimensions string          `json:"dimensions"`

	ViewsCount int `json:"views_count" gorm:"default:0"`
	SalesCount int `json:"sales_count" gorm:"default:0"`

	// Gallery images beyond MainImage, loaded on the detail view only
	Images []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type ProductImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Image     string    `json:"image" gorm:"not null"`
	SortOrder int       `json:"order" gorm:"column:sort_order;default:0"`
	CreatedAt time.Time `json:"created_at"`
}
