package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a fulfillment order between a buyer and a seller. Status and
// timestamps are mutated only through service.OrderService transitions.
type Order struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	OrderNo       string `gorm:"uniqueIndex;not null" json:"order_no"`
	Status        string `gorm:"index;not null" json:"status"`
	PaymentStatus string `gorm:"index;not null;default:'unpaid'" json:"payment_status"`
	TotalPrice    Money  `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	DepositAmount *Money `gorm:"type:decimal(20,2)" json:"deposit_amount,omitempty"`
	Description   string `gorm:"type:text" json:"description,omitempty"`

	BuyerID  uint `gorm:"index;not null" json:"buyer_id"`
	SellerID uint `gorm:"index;not null" json:"seller_id"`
	CityID   uint `gorm:"index;not null" json:"city_id"`

	PickupPersonID   *uint `gorm:"index" json:"pickup_person_id,omitempty"`
	DeliveryPersonID *uint `gorm:"index" json:"delivery_person_id,omitempty"`

	RejectionReason string `gorm:"type:text" json:"rejection_reason,omitempty"`
	CancelReason    string `gorm:"type:text" json:"cancel_reason,omitempty"`
	SuspendReason   string `gorm:"type:text" json:"suspend_reason,omitempty"`

	AdminApprovedAt     *time.Time `json:"admin_approved_at"`
	SellerApprovedAt    *time.Time `json:"seller_approved_at"`
	WorkCompletedAt     *time.Time `json:"work_completed_at"`
	DeliveryScheduledAt *time.Time `gorm:"index" json:"delivery_scheduled_at"`
	DeliveryPickedUpAt  *time.Time `json:"delivery_picked_up_at"`
	DeliveredAt         *time.Time `json:"delivered_at"`
	SuspendedAt         *time.Time `json:"suspended_at"`
	CompletedAt         *time.Time `json:"completed_at"`
	RejectedAt          *time.Time `json:"rejected_at"`
	CancelledAt         *time.Time `json:"cancelled_at"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	History []OrderHistory `gorm:"foreignKey:OrderID" json:"history,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
