package models

import (
	"time"

	"gorm.io/gorm"
)

// City carries the delivery fee and commission rate applied to orders
// placed in it. Read-only input to profit calculation.
type City struct {
	ID                        uint           `gorm:"primarykey" json:"id"`
	Name                      string         `gorm:"uniqueIndex;not null" json:"name"`
	DeliveryFee               Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"`
	PlatformCommissionPercent Money          `gorm:"type:decimal(5,2);not null;default:0" json:"platform_commission_percent"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`
	DeletedAt                 gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (City) TableName() string {
	return "cities"
}
