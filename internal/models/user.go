package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a buyer account. WalletBalance is mutated only through
// service.WalletService.
type User struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName   string         `gorm:"default:''" json:"display_name"`
	Status        string         `gorm:"default:'active'" json:"status"`
	WalletBalance Money          `gorm:"type:decimal(20,2);not null;default:0" json:"wallet_balance"`
	LastLoginAt   *time.Time     `json:"last_login_at"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
