package models

import "time"

// WalletTransaction is one ledger entry against a buyer or seller wallet.
// Reference is unique; ledger writes look it up first so retried
// operations never double-apply.
type WalletTransaction struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	OwnerKind     string    `gorm:"index:idx_wallet_owner;not null" json:"owner_kind"` // buyer / seller
	OwnerID       uint      `gorm:"index:idx_wallet_owner;not null" json:"owner_id"`
	OrderID       *uint     `gorm:"index" json:"order_id,omitempty"`
	Type          string    `gorm:"not null" json:"type"`
	Direction     string    `gorm:"not null" json:"direction"`
	Amount        Money     `gorm:"type:decimal(20,2);not null" json:"amount"`
	BalanceBefore Money     `gorm:"type:decimal(20,2);not null" json:"balance_before"`
	BalanceAfter  Money     `gorm:"type:decimal(20,2);not null" json:"balance_after"`
	Reference     string    `gorm:"uniqueIndex;not null" json:"reference"`
	Remark        string    `gorm:"type:text" json:"remark,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
