package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Username       string         `json:"username" gorm:"unique;not null"`
	Email          string         `json:"email" gorm:"unique;not null"`
	PasswordHash   string         `json:"-" gorm:"not null"`
	Phone          string         `json:"phone" gorm:"unique;not null"`
	WhatsAppNumber string         `json:"whatsapp_number" gorm:"column:whats_app_number"`
	Address        string         `json:"address" gorm:"type:text"`
	City           string         `json:"city" gorm:"default:'Yaoundé'"`
	UserType       string         `json:"user_type" gorm:"default:'client'"` // client, reseller, vendor
	IsVerified     bool           `json:"is_verified" gorm:"default:false"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type UserType string

const (
	UserClient   UserType = "client"
	UserReseller UserType = "reseller"
	UserVendor   UserType = "vendor"
)

// DisplayName is the name used in WhatsApp messages and order summaries.
func (u *User) DisplayName() string {
	return u.Username
}
