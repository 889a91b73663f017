package repository

import "time"

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	OrderNo     string
	BuyerID     uint
	SellerID    uint
	CityID      uint
	PersonnelID uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// WithdrawalListFilter filters withdrawal request listings.
type WithdrawalListFilter struct {
	Page        int
	PageSize    int
	OwnerID     uint
	Status      string
	Method      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// WalletTransactionListFilter filters wallet ledger listings.
type WalletTransactionListFilter struct {
	Page      int
	PageSize  int
	OwnerKind string
	OwnerID   uint
	OrderID   uint
	Type      string
	Direction string
}

// PersonnelListFilter filters delivery personnel listings.
type PersonnelListFilter struct {
	Page          int
	PageSize      int
	Status        string
	OnlyAvailable bool
	Keyword       string
}

// ProfitListFilter filters platform profit listings.
type ProfitListFilter struct {
	Page        int
	PageSize    int
	CityID      uint
	SellerID    uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// NotificationListFilter filters notification inbox listings.
type NotificationListFilter struct {
	Page          int
	PageSize      int
	RecipientRole string
	RecipientID   uint
	OnlyUnread    bool
}
