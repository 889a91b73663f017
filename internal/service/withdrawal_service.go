package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/souqline/internal/config"
	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WithdrawalService validates and decides payout requests for both
// sellers and buyers. Creation holds no escrow: funds stay in the wallet
// until an admin approves, and the balance is re-validated inside the
// approval transaction.
type WithdrawalService struct {
	withdrawalRepo      repository.WithdrawalRepository
	buyerWithdrawalRepo repository.BuyerWithdrawalRepository
	walletSvc           *WalletService
	notifySvc           *NotificationService

	minAmount models.Money
	maxAmount models.Money
	methods   map[string]bool
}

// CreateWithdrawalInput describes a new payout request.
type CreateWithdrawalInput struct {
	OwnerKind      string // seller / buyer
	OwnerID        uint
	Amount         models.Money
	PaymentMethod  string
	PaymentDetails string
}

// DecideWithdrawalInput describes an admin decision.
type DecideWithdrawalInput struct {
	OwnerKind string
	RequestID uint
	AdminID   uint
	Notes     string
	Reason    string
}

// NewWithdrawalService creates a withdrawal service.
func NewWithdrawalService(
	withdrawalRepo repository.WithdrawalRepository,
	buyerWithdrawalRepo repository.BuyerWithdrawalRepository,
	walletSvc *WalletService,
	notifySvc *NotificationService,
	cfg *config.WithdrawalConfig,
) *WithdrawalService {
	minAmount := decimal.NewFromInt(100)
	maxAmount := decimal.NewFromInt(100000)
	methods := map[string]bool{}
	if cfg != nil {
		if d, err := decimal.NewFromString(strings.TrimSpace(cfg.MinAmount)); err == nil && d.IsPositive() {
			minAmount = d
		}
		if d, err := decimal.NewFromString(strings.TrimSpace(cfg.MaxAmount)); err == nil && d.IsPositive() {
			maxAmount = d
		}
		for _, m := range cfg.Methods {
			m = strings.TrimSpace(m)
			if m != "" {
				methods[m] = true
			}
		}
	}
	if len(methods) == 0 {
		methods = map[string]bool{
			constants.PaymentMethodVodafoneCash: true,
			constants.PaymentMethodInstapay:     true,
			constants.PaymentMethodEtisalatCash: true,
			constants.PaymentMethodOrangeCash:   true,
			constants.PaymentMethodBankTransfer: true,
		}
	}
	return &WithdrawalService{
		withdrawalRepo:      withdrawalRepo,
		buyerWithdrawalRepo: buyerWithdrawalRepo,
		walletSvc:           walletSvc,
		notifySvc:           notifySvc,
		minAmount:           models.NewMoneyFromDecimal(minAmount),
		maxAmount:           models.NewMoneyFromDecimal(maxAmount),
		methods:             methods,
	}
}

// Create validates and stores a new pending request. No funds move yet.
func (s *WithdrawalService) Create(input CreateWithdrawalInput) (interface{}, error) {
	if input.OwnerID == 0 {
		return nil, ErrWalletOwnerNotFound
	}
	amount := input.Amount.Decimal.Round(2)
	if amount.LessThan(s.minAmount.Decimal) || amount.GreaterThan(s.maxAmount.Decimal) {
		return nil, ErrWithdrawalAmountOutOfRange
	}
	if !s.methods[strings.TrimSpace(input.PaymentMethod)] {
		return nil, ErrWithdrawalMethodInvalid
	}
	details := strings.TrimSpace(input.PaymentDetails)
	if details == "" {
		return nil, ErrWithdrawalDetailsRequired
	}

	switch input.OwnerKind {
	case constants.WithdrawalOwnerSeller:
		return s.createSeller(input, amount, details)
	case constants.WithdrawalOwnerBuyer:
		return s.createBuyer(input, amount, details)
	default:
		return nil, ErrWalletOwnerNotFound
	}
}

func (s *WithdrawalService) createSeller(input CreateWithdrawalInput, amount decimal.Decimal, details string) (*models.WithdrawalRequest, error) {
	var req *models.WithdrawalRequest
	err := s.walletSvc.walletRepo.Transaction(func(tx *gorm.DB) error {
		balance, err := s.walletSvc.walletRepo.WithTx(tx).GetBalanceForUpdate(constants.WalletOwnerSeller, input.OwnerID)
		if err != nil {
			return err
		}
		if balance == nil {
			return ErrSellerNotFound
		}
		repo := s.withdrawalRepo.WithTx(tx)
		pending, err := repo.HasPending(input.OwnerID)
		if err != nil {
			return err
		}
		if pending {
			return ErrWithdrawalPendingExists
		}
		if balance.Decimal.LessThan(amount) {
			return ErrWalletInsufficientBalance
		}
		req = &models.WithdrawalRequest{
			SellerID:       input.OwnerID,
			Amount:         models.NewMoneyFromDecimal(amount),
			PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
			PaymentDetails: details,
			Status:         constants.WithdrawalStatusPending,
		}
		return repo.Create(req)
	})
	if err != nil {
		return nil, err
	}
	s.notifySvc.NotifyAdmins(constants.NotificationKindWithdrawalPending,
		fmt.Sprintf("seller withdrawal request #%d for %s is pending review", req.ID, req.Amount.String()), "")
	return req, nil
}

func (s *WithdrawalService) createBuyer(input CreateWithdrawalInput, amount decimal.Decimal, details string) (*models.BuyerWithdrawalRequest, error) {
	var req *models.BuyerWithdrawalRequest
	err := s.walletSvc.walletRepo.Transaction(func(tx *gorm.DB) error {
		balance, err := s.walletSvc.walletRepo.WithTx(tx).GetBalanceForUpdate(constants.WalletOwnerBuyer, input.OwnerID)
		if err != nil {
			return err
		}
		if balance == nil {
			return ErrUserNotFound
		}
		repo := s.buyerWithdrawalRepo.WithTx(tx)
		pending, err := repo.HasPending(input.OwnerID)
		if err != nil {
			return err
		}
		if pending {
			return ErrWithdrawalPendingExists
		}
		if balance.Decimal.LessThan(amount) {
			return ErrWalletInsufficientBalance
		}
		req = &models.BuyerWithdrawalRequest{
			UserID:         input.OwnerID,
			Amount:         models.NewMoneyFromDecimal(amount),
			PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
			PaymentDetails: details,
			Status:         constants.WithdrawalStatusPending,
		}
		return repo.Create(req)
	})
	if err != nil {
		return nil, err
	}
	s.notifySvc.NotifyAdmins(constants.NotificationKindWithdrawalPending,
		fmt.Sprintf("buyer withdrawal request #%d for %s is pending review", req.ID, req.Amount.String()), "")
	return req, nil
}

// Approve debits the owner's wallet and marks the request approved, all
// in one transaction. The balance is checked again under lock: if it
// dropped below the requested amount since creation, the approval fails
// and the request stays pending.
func (s *WithdrawalService) Approve(input DecideWithdrawalInput) (interface{}, error) {
	switch input.OwnerKind {
	case constants.WithdrawalOwnerSeller:
		return s.approveSeller(input)
	case constants.WithdrawalOwnerBuyer:
		return s.approveBuyer(input)
	default:
		return nil, ErrWithdrawalNotFound
	}
}

func (s *WithdrawalService) approveSeller(input DecideWithdrawalInput) (*models.WithdrawalRequest, error) {
	var result *models.WithdrawalRequest
	err := s.walletSvc.walletRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.withdrawalRepo.WithTx(tx)
		req, err := repo.GetByIDForUpdate(input.RequestID)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrWithdrawalNotFound
		}
		if req.Status != constants.WithdrawalStatusPending {
			return ErrWithdrawalAlreadyProcessed
		}

		reqID := req.ID
		if _, err := s.walletSvc.DebitInTx(tx, WalletMutationInput{
			OwnerKind: constants.WalletOwnerSeller,
			OwnerID:   req.SellerID,
			Amount:    req.Amount,
			TxnType:   constants.WalletTxnTypeWithdrawal,
			Reference: fmt.Sprintf("withdrawal:seller:%d", reqID),
			Remark:    fmt.Sprintf("withdrawal request #%d approved", reqID),
		}); err != nil {
			return err
		}

		now := time.Now()
		req.Status = constants.WithdrawalStatusApproved
		req.AdminNotes = strings.TrimSpace(input.Notes)
		req.ProcessedBy = &input.AdminID
		req.ProcessedAt = &now
		if err := repo.Update(req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifySvc.Notify(constants.ActorRoleSeller, result.SellerID, constants.NotificationKindWithdrawalApproved,
		fmt.Sprintf("your withdrawal request #%d for %s was approved", result.ID, result.Amount.String()), "")
	return result, nil
}

func (s *WithdrawalService) approveBuyer(input DecideWithdrawalInput) (*models.BuyerWithdrawalRequest, error) {
	var result *models.BuyerWithdrawalRequest
	err := s.walletSvc.walletRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.buyerWithdrawalRepo.WithTx(tx)
		req, err := repo.GetByIDForUpdate(input.RequestID)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrWithdrawalNotFound
		}
		if req.Status != constants.WithdrawalStatusPending {
			return ErrWithdrawalAlreadyProcessed
		}

		reqID := req.ID
		if _, err := s.walletSvc.DebitInTx(tx, WalletMutationInput{
			OwnerKind: constants.WalletOwnerBuyer,
			OwnerID:   req.UserID,
			Amount:    req.Amount,
			TxnType:   constants.WalletTxnTypeWithdrawal,
			Reference: fmt.Sprintf("withdrawal:buyer:%d", reqID),
			Remark:    fmt.Sprintf("withdrawal request #%d approved", reqID),
		}); err != nil {
			return err
		}

		now := time.Now()
		req.Status = constants.WithdrawalStatusApproved
		req.AdminNotes = strings.TrimSpace(input.Notes)
		req.ProcessedBy = &input.AdminID
		req.ProcessedAt = &now
		if err := repo.Update(req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifySvc.Notify(constants.ActorRoleBuyer, result.UserID, constants.NotificationKindWithdrawalApproved,
		fmt.Sprintf("your withdrawal request #%d for %s was approved", result.ID, result.Amount.String()), "")
	return result, nil
}

// Reject closes a pending request with a required reason. No funds move.
func (s *WithdrawalService) Reject(input DecideWithdrawalInput) (interface{}, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, ErrWithdrawalReasonRequired
	}
	switch input.OwnerKind {
	case constants.WithdrawalOwnerSeller:
		return s.rejectSeller(input, reason)
	case constants.WithdrawalOwnerBuyer:
		return s.rejectBuyer(input, reason)
	default:
		return nil, ErrWithdrawalNotFound
	}
}

func (s *WithdrawalService) rejectSeller(input DecideWithdrawalInput, reason string) (*models.WithdrawalRequest, error) {
	var result *models.WithdrawalRequest
	err := s.walletSvc.walletRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.withdrawalRepo.WithTx(tx)
		req, err := repo.GetByIDForUpdate(input.RequestID)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrWithdrawalNotFound
		}
		if req.Status != constants.WithdrawalStatusPending {
			return ErrWithdrawalAlreadyProcessed
		}
		now := time.Now()
		req.Status = constants.WithdrawalStatusRejected
		req.RejectionReason = reason
		req.AdminNotes = strings.TrimSpace(input.Notes)
		req.ProcessedBy = &input.AdminID
		req.ProcessedAt = &now
		if err := repo.Update(req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifySvc.Notify(constants.ActorRoleSeller, result.SellerID, constants.NotificationKindWithdrawalRejected,
		fmt.Sprintf("your withdrawal request #%d was rejected: %s", result.ID, reason), "")
	return result, nil
}

func (s *WithdrawalService) rejectBuyer(input DecideWithdrawalInput, reason string) (*models.BuyerWithdrawalRequest, error) {
	var result *models.BuyerWithdrawalRequest
	err := s.walletSvc.walletRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.buyerWithdrawalRepo.WithTx(tx)
		req, err := repo.GetByIDForUpdate(input.RequestID)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrWithdrawalNotFound
		}
		if req.Status != constants.WithdrawalStatusPending {
			return ErrWithdrawalAlreadyProcessed
		}
		now := time.Now()
		req.Status = constants.WithdrawalStatusRejected
		req.RejectionReason = reason
		req.AdminNotes = strings.TrimSpace(input.Notes)
		req.ProcessedBy = &input.AdminID
		req.ProcessedAt = &now
		if err := repo.Update(req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifySvc.Notify(constants.ActorRoleBuyer, result.UserID, constants.NotificationKindWithdrawalRejected,
		fmt.Sprintf("your withdrawal request #%d was rejected: %s", result.ID, reason), "")
	return result, nil
}

// ListSeller queries seller withdrawal requests.
func (s *WithdrawalService) ListSeller(filter repository.WithdrawalListFilter) ([]models.WithdrawalRequest, int64, error) {
	return s.withdrawalRepo.List(filter)
}

// ListBuyer queries buyer withdrawal requests.
func (s *WithdrawalService) ListBuyer(filter repository.WithdrawalListFilter) ([]models.BuyerWithdrawalRequest, int64, error) {
	return s.buyerWithdrawalRepo.List(filter)
}

// Bounds returns the configured [min, max] request range.
func (s *WithdrawalService) Bounds() (models.Money, models.Money) {
	return s.minAmount, s.maxAmount
}

// Methods returns the enabled payment methods.
func (s *WithdrawalService) Methods() []string {
	methods := make([]string, 0, len(s.methods))
	for m := range s.methods {
		methods = append(methods, m)
	}
	return methods
}
