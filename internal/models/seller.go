package models

import (
	"time"

	"gorm.io/gorm"
)

// Seller is a merchant account. WalletBalance is mutated only through
// service.WalletService.
type Seller struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	ShopName      string         `gorm:"not null" json:"shop_name"`
	Status        string         `gorm:"default:'active'" json:"status"`
	CityID        uint           `gorm:"index" json:"city_id"`
	WalletBalance Money          `gorm:"type:decimal(20,2);not null;default:0" json:"wallet_balance"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Seller) TableName() string {
	return "sellers"
}
