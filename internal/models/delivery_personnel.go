package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryPersonnel is a pickup/delivery agent. TripsCount is a monotonic
// counter incremented on pickup and on delivery.
type DeliveryPersonnel struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Phone       string         `gorm:"uniqueIndex;not null" json:"phone"`
	Status      string         `gorm:"index;not null;default:'active'" json:"status"`
	IsAvailable bool           `gorm:"not null;default:true" json:"is_available"`
	TripsCount  uint           `gorm:"not null;default:0" json:"trips_count"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	LastSeenAt  *time.Time     `json:"last_seen_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (DeliveryPersonnel) TableName() string {
	return "delivery_personnel"
}

// IsActive reports whether the personnel may take assignments.
func (p *DeliveryPersonnel) IsActive() bool {
	return p != nil && p.Status == "active"
}
