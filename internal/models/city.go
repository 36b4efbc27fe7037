package models

import (
	"time"

	"gorm.io/gorm"
)

// City is reference data for the WhatsApp checkout flow: each city has its
// own WhatsApp contact number that receives order messages.
type City struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"unique;not null"`
	WhatsAppNumber string         `json:"whatsapp_number" gorm:"column:whats_app_number;not null"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	DisplayOrder   int            `json:"display_order" gorm:"default:0"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
