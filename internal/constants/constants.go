package constants

// Order status constants
const (
	OrderStatusPendingAdminApproval = "pending_admin_approval"
	OrderStatusAdminApproved        = "admin_approved"
	OrderStatusSellerApproved       = "seller_approved"
	OrderStatusWorkCompleted        = "work_completed"
	OrderStatusReadyForDelivery     = "ready_for_delivery"
	OrderStatusOutForDelivery       = "out_for_delivery"
	OrderStatusDelivered            = "delivered"
	OrderStatusCompleted            = "completed"
	OrderStatusRejected             = "rejected"
	OrderStatusCancelled            = "cancelled"
	OrderStatusSuspended            = "suspended"
)

// Payment status constants
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Actor role constants (history attribution and authorization)
const (
	ActorRoleAdmin    = "admin"
	ActorRoleSeller   = "seller"
	ActorRoleBuyer    = "buyer"
	ActorRoleDelivery = "delivery"
	ActorRoleSystem   = "system"
)

// Delivery personnel status constants
const (
	PersonnelStatusActive    = "active"
	PersonnelStatusInactive  = "inactive"
	PersonnelStatusSuspended = "suspended"
)

// Delivery assignment role constants
const (
	AssignmentRolePickup   = "pickup"
	AssignmentRoleDelivery = "delivery"
)

// Withdrawal status constants
const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

// Withdrawal owner kind constants
const (
	WithdrawalOwnerSeller = "seller"
	WithdrawalOwnerBuyer  = "buyer"
)

// Withdrawal payment method constants
const (
	PaymentMethodVodafoneCash = "vodafone_cash"
	PaymentMethodInstapay     = "instapay"
	PaymentMethodEtisalatCash = "etisalat_cash"
	PaymentMethodOrangeCash   = "orange_cash"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Wallet owner kind constants
const (
	WalletOwnerBuyer  = "buyer"
	WalletOwnerSeller = "seller"
)

// Wallet transaction type constants
const (
	WalletTxnTypeOrderEarning = "order_earning"
	WalletTxnTypeOrderRefund  = "order_refund"
	WalletTxnTypeWithdrawal   = "withdrawal"
	WalletTxnTypeAdminAdjust  = "admin_adjust"
)

// Wallet transaction direction constants
const (
	WalletTxnDirectionIn  = "in"
	WalletTxnDirectionOut = "out"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Notification kind constants
const (
	NotificationKindOrderApproved      = "order_approved"
	NotificationKindOrderRejected      = "order_rejected"
	NotificationKindOrderCancelled     = "order_cancelled"
	NotificationKindOrderReady         = "order_ready"
	NotificationKindOrderAssigned      = "order_assigned"
	NotificationKindOrderPickedUp      = "order_picked_up"
	NotificationKindOrderDelivered     = "order_delivered"
	NotificationKindOrderCompleted     = "order_completed"
	NotificationKindOrderSuspended     = "order_suspended"
	NotificationKindOrderStale         = "order_stale"
	NotificationKindWithdrawalPending  = "withdrawal_pending"
	NotificationKindWithdrawalApproved = "withdrawal_approved"
	NotificationKindWithdrawalRejected = "withdrawal_rejected"
)

// Queue and task name constants
const (
	QueueDefault             = "default"
	TaskNotificationDispatch = "notification:dispatch"
)
