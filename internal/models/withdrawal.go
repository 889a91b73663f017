package models

import (
	"time"

	"gorm.io/gorm"
)

// WithdrawalRequest is a seller payout request. It is created pending,
// decided exactly once by an admin, then immutable. At most one pending
// request per seller exists at a time (partial unique index, see
// AutoMigrate).
type WithdrawalRequest struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	SellerID        uint           `gorm:"index;not null" json:"seller_id"`
	Amount          Money          `gorm:"type:decimal(20,2);not null" json:"amount"`
	PaymentMethod   string         `gorm:"not null" json:"payment_method"`
	PaymentDetails  string         `gorm:"type:text;not null" json:"payment_details"`
	Status          string         `gorm:"index;not null;default:'pending'" json:"status"`
	AdminNotes      string         `gorm:"type:text" json:"admin_notes,omitempty"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	ProcessedBy     *uint          `gorm:"index" json:"processed_by,omitempty"`
	ProcessedAt     *time.Time     `json:"processed_at,omitempty"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

// BuyerWithdrawalRequest is the buyer-wallet variant of a payout request,
// with the same lifecycle as WithdrawalRequest.
type BuyerWithdrawalRequest struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	Amount          Money          `gorm:"type:decimal(20,2);not null" json:"amount"`
	PaymentMethod   string         `gorm:"not null" json:"payment_method"`
	PaymentDetails  string         `gorm:"type:text;not null" json:"payment_details"`
	Status          string         `gorm:"index;not null;default:'pending'" json:"status"`
	AdminNotes      string         `gorm:"type:text" json:"admin_notes,omitempty"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	ProcessedBy     *uint          `gorm:"index" json:"processed_by,omitempty"`
	ProcessedAt     *time.Time     `json:"processed_at,omitempty"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (BuyerWithdrawalRequest) TableName() string {
	return "buyer_withdrawal_requests"
}
