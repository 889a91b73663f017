package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletService owns every balance mutation. Balances change only inside
// a database transaction, with the owner row locked and a ledger entry
// recorded; the unique ledger reference makes each mutation idempotent.
type WalletService struct {
	walletRepo repository.WalletRepository
}

// WalletMutationInput describes one balance change.
type WalletMutationInput struct {
	OwnerKind string
	OwnerID   uint
	Amount    models.Money
	TxnType   string
	Reference string
	Remark    string
	OrderID   *uint
}

// WalletAdjustInput is an admin balance adjustment. Delta may be negative.
type WalletAdjustInput struct {
	OwnerKind string
	OwnerID   uint
	Delta     models.Money
	Remark    string
}

// NewWalletService creates a wallet service.
func NewWalletService(walletRepo repository.WalletRepository) *WalletService {
	return &WalletService{walletRepo: walletRepo}
}

// CreditInTx adds funds to the owner's wallet inside the caller's
// transaction. A reference that was already applied is a no-op.
func (s *WalletService) CreditInTx(tx *gorm.DB, input WalletMutationInput) (*models.WalletTransaction, error) {
	return s.applyInTx(tx, input, constants.WalletTxnDirectionIn)
}

// DebitInTx removes funds from the owner's wallet inside the caller's
// transaction. Fails with ErrWalletInsufficientBalance rather than
// letting the balance go negative.
func (s *WalletService) DebitInTx(tx *gorm.DB, input WalletMutationInput) (*models.WalletTransaction, error) {
	return s.applyInTx(tx, input, constants.WalletTxnDirectionOut)
}

func (s *WalletService) applyInTx(tx *gorm.DB, input WalletMutationInput, direction string) (*models.WalletTransaction, error) {
	if tx == nil {
		return nil, ErrOrderUpdateFailed
	}
	if input.OwnerID == 0 {
		return nil, ErrWalletOwnerNotFound
	}
	amount := input.Amount.Decimal.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrWalletInvalidAmount
	}
	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		return nil, ErrWalletInvalidAmount
	}

	repo := s.walletRepo.WithTx(tx)

	existing, err := repo.GetTransactionByReference(reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	balance, err := repo.GetBalanceForUpdate(input.OwnerKind, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, ErrWalletOwnerNotFound
	}

	before := balance.Decimal.Round(2)
	var after decimal.Decimal
	switch direction {
	case constants.WalletTxnDirectionIn:
		after = before.Add(amount).Round(2)
	case constants.WalletTxnDirectionOut:
		after = before.Sub(amount).Round(2)
		if after.IsNegative() {
			return nil, ErrWalletInsufficientBalance
		}
	default:
		return nil, ErrWalletInvalidAmount
	}

	if err := repo.UpdateBalance(input.OwnerKind, input.OwnerID, models.NewMoneyFromDecimal(after)); err != nil {
		return nil, err
	}

	txn := &models.WalletTransaction{
		OwnerKind:     input.OwnerKind,
		OwnerID:       input.OwnerID,
		OrderID:       input.OrderID,
		Type:          input.TxnType,
		Direction:     direction,
		Amount:        models.NewMoneyFromDecimal(amount),
		BalanceBefore: models.NewMoneyFromDecimal(before),
		BalanceAfter:  models.NewMoneyFromDecimal(after),
		Reference:     reference,
		Remark:        strings.TrimSpace(input.Remark),
		CreatedAt:     time.Now(),
	}
	if err := repo.CreateTransaction(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// AdminAdjustBalance applies a signed admin adjustment in its own
// transaction.
func (s *WalletService) AdminAdjustBalance(input WalletAdjustInput) (*models.WalletTransaction, error) {
	if input.OwnerID == 0 {
		return nil, ErrWalletOwnerNotFound
	}
	delta := input.Delta.Decimal.Round(2)
	if delta.IsZero() {
		return nil, ErrWalletInvalidAmount
	}

	direction := constants.WalletTxnDirectionIn
	amount := delta
	if delta.IsNegative() {
		direction = constants.WalletTxnDirectionOut
		amount = delta.Neg()
	}

	input.Remark = cleanRemark(input.Remark, "admin balance adjustment")
	reference := buildWalletReference("admin_adjust", input.OwnerKind, input.OwnerID)

	var txn *models.WalletTransaction
	err := s.walletRepo.Transaction(func(tx *gorm.DB) error {
		var applyErr error
		txn, applyErr = s.applyInTx(tx, WalletMutationInput{
			OwnerKind: input.OwnerKind,
			OwnerID:   input.OwnerID,
			Amount:    models.NewMoneyFromDecimal(amount),
			TxnType:   constants.WalletTxnTypeAdminAdjust,
			Reference: reference,
			Remark:    input.Remark,
		}, direction)
		return applyErr
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// GetBalance reads the owner's current balance.
func (s *WalletService) GetBalance(ownerKind string, ownerID uint) (models.Money, error) {
	var balance models.Money
	err := s.walletRepo.Transaction(func(tx *gorm.DB) error {
		b, err := s.walletRepo.WithTx(tx).GetBalanceForUpdate(ownerKind, ownerID)
		if err != nil {
			return err
		}
		if b == nil {
			return ErrWalletOwnerNotFound
		}
		balance = *b
		return nil
	})
	return balance, err
}

// ListTransactions queries the ledger.
func (s *WalletService) ListTransactions(filter repository.WalletTransactionListFilter) ([]models.WalletTransaction, int64, error) {
	return s.walletRepo.ListTransactions(filter)
}

func buildWalletReference(kind, ownerKind string, ownerID uint) string {
	return fmt.Sprintf("%s:%s:%d:%d", kind, ownerKind, ownerID, time.Now().UnixNano())
}

func cleanRemark(remark, fallback string) string {
	remark = strings.TrimSpace(remark)
	if remark == "" {
		return fallback
	}
	return remark
}
