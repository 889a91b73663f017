package models

import "time"

// PlatformProfit is the commission retained from one completed order.
// The unique index on OrderID makes order completion idempotent: at most
// one row ever exists per order.
type PlatformProfit struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	CityID    uint      `gorm:"index;not null" json:"city_id"`
	SellerID  uint      `gorm:"index;not null" json:"seller_id"`
	Amount    Money     `gorm:"type:decimal(20,2);not null" json:"amount"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (PlatformProfit) TableName() string {
	return "platform_profits"
}
