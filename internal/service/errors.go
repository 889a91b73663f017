package service

import "errors"

// Order errors
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderStatusInvalid   = errors.New("order status does not allow this transition")
	ErrOrderNotReady        = errors.New("order is not ready for delivery")
	ErrOrderAlreadyAssigned = errors.New("order already has personnel assigned for this role")
	ErrOrderFetchFailed     = errors.New("failed to fetch order")
	ErrOrderUpdateFailed    = errors.New("failed to update order")
	ErrOrderReasonRequired  = errors.New("a reason is required for this action")
	ErrActorForbidden       = errors.New("actor is not allowed to perform this action")
)

// Delivery errors
var (
	ErrPersonnelNotFound        = errors.New("delivery personnel not found")
	ErrPersonnelInactive        = errors.New("delivery personnel is not active")
	ErrPersonnelUnavailable     = errors.New("delivery personnel is not available")
	ErrPersonnelStatusInvalid   = errors.New("delivery personnel status is invalid")
	ErrPersonnelDetailsRequired = errors.New("delivery personnel name and phone are required")
	ErrPersonnelPhoneTaken      = errors.New("delivery personnel phone is already registered")
)

// Wallet errors
var (
	ErrWalletOwnerNotFound       = errors.New("wallet owner not found")
	ErrWalletInvalidAmount       = errors.New("wallet amount must be positive")
	ErrWalletInsufficientBalance = errors.New("wallet balance is insufficient")
)

// Withdrawal errors
var (
	ErrWithdrawalNotFound         = errors.New("withdrawal request not found")
	ErrWithdrawalAmountOutOfRange = errors.New("withdrawal amount is out of the allowed range")
	ErrWithdrawalMethodInvalid    = errors.New("withdrawal payment method is not supported")
	ErrWithdrawalDetailsRequired  = errors.New("withdrawal payment details are required")
	ErrWithdrawalPendingExists    = errors.New("a pending withdrawal request already exists")
	ErrWithdrawalAlreadyProcessed = errors.New("withdrawal request has already been processed")
	ErrWithdrawalReasonRequired   = errors.New("a rejection reason is required")
)

// Account errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrSellerNotFound = errors.New("seller not found")
	ErrCityNotFound   = errors.New("city not found")
	ErrCityNameTaken  = errors.New("city name already exists")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)
