package models

import "time"

// OrderHistory is one entry in the append-only audit trail of an order.
// Rows are inserted in the same transaction as the status change they
// describe and are never updated or deleted.
type OrderHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Status    string    `gorm:"not null" json:"status"`
	ActorID   *uint     `gorm:"index" json:"actor_id,omitempty"` // nil for system-originated changes
	ActorRole string    `gorm:"not null" json:"actor_role"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (OrderHistory) TableName() string {
	return "order_histories"
}
