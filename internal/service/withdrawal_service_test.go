package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/souqline/internal/config"
	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupWithdrawalServiceTest(t *testing.T) (*WithdrawalService, *WalletService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:withdrawal_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Seller{},
		&models.WalletTransaction{},
		&models.WithdrawalRequest{},
		&models.BuyerWithdrawalRequest{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	walletSvc := NewWalletService(repository.NewWalletRepository(db))
	notifySvc := NewNotificationService(repository.NewNotificationRepository(db), repository.NewAdminRepository(db), nil)
	svc := NewWithdrawalService(
		repository.NewWithdrawalRepository(db),
		repository.NewBuyerWithdrawalRepository(db),
		walletSvc,
		notifySvc,
		&config.WithdrawalConfig{
			MinAmount: "100",
			MaxAmount: "5000",
			Methods:   []string{constants.PaymentMethodInstapay, constants.PaymentMethodVodafoneCash},
		},
	)
	return svc, walletSvc, db
}

func sellerWithdrawalInput(t *testing.T, sellerID uint, amount string) CreateWithdrawalInput {
	t.Helper()
	return CreateWithdrawalInput{
		OwnerKind:      constants.WithdrawalOwnerSeller,
		OwnerID:        sellerID,
		Amount:         walletTestMoney(t, amount),
		PaymentMethod:  constants.PaymentMethodInstapay,
		PaymentDetails: "instapay@seller",
	}
}

func TestCreateWithdrawalValidatesRequest(t *testing.T) {
	svc, _, db := setupWithdrawalServiceTest(t)
	seller := createWalletTestSeller(t, db, "withdraw-validate@example.com", "1000")

	input := sellerWithdrawalInput(t, seller.ID, "50")
	if _, err := svc.Create(input); !errors.Is(err, ErrWithdrawalAmountOutOfRange) {
		t.Fatalf("expected out of range below minimum, got %v", err)
	}

	input = sellerWithdrawalInput(t, seller.ID, "6000")
	if _, err := svc.Create(input); !errors.Is(err, ErrWithdrawalAmountOutOfRange) {
		t.Fatalf("expected out of range above maximum, got %v", err)
	}

	input = sellerWithdrawalInput(t, seller.ID, "500")
	input.PaymentMethod = "carrier_pigeon"
	if _, err := svc.Create(input); !errors.Is(err, ErrWithdrawalMethodInvalid) {
		t.Fatalf("expected invalid method, got %v", err)
	}

	input = sellerWithdrawalInput(t, seller.ID, "500")
	input.PaymentDetails = "   "
	if _, err := svc.Create(input); !errors.Is(err, ErrWithdrawalDetailsRequired) {
		t.Fatalf("expected details required, got %v", err)
	}

	input = sellerWithdrawalInput(t, seller.ID, "2000")
	if _, err := svc.Create(input); !errors.Is(err, ErrWalletInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}

func TestCreateWithdrawalRejectsSecondPending(t *testing.T) {
	svc, _, db := setupWithdrawalServiceTest(t)
	seller := createWalletTestSeller(t, db, "withdraw-pending@example.com", "1000")

	if _, err := svc.Create(sellerWithdrawalInput(t, seller.ID, "300")); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if _, err := svc.Create(sellerWithdrawalInput(t, seller.ID, "200")); !errors.Is(err, ErrWithdrawalPendingExists) {
		t.Fatalf("expected pending exists, got %v", err)
	}
}

func TestCreateWithdrawalHoldsNoFunds(t *testing.T) {
	svc, walletSvc, db := setupWithdrawalServiceTest(t)
	seller := createWalletTestSeller(t, db, "withdraw-noescrow@example.com", "1000")

	if _, err := svc.Create(sellerWithdrawalInput(t, seller.ID, "400")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	balance, err := walletSvc.GetBalance(constants.WalletOwnerSeller, seller.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.String() != "1000.00" {
		t.Fatalf("expected balance untouched until approval, got %s", balance.String())
	}
}

func TestApproveWithdrawalDebitsWallet(t *testing.T) {
	svc, walletSvc, db := setupWithdrawalServiceTest(t)
	seller := createWalletTestSeller(t, db, "withdraw-approve@example.com", "1000")

	created, err := svc.Create(sellerWithdrawalInput(t, seller.ID, "400"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	req := created.(*models.WithdrawalRequest)

	decided, err := svc.Approve(DecideWithdrawalInput{
		OwnerKind: constants.WithdrawalOwnerSeller,
		RequestID: req.ID,
		AdminID:   1,
		Notes:     "paid via instapay",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	approved := decided.(*models.WithdrawalRequest)
	if approved.Status != constants.WithdrawalStatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
	if approved.ProcessedBy == nil || *approved.ProcessedBy != 1 || approved.ProcessedAt == nil {
		t.Fatalf("expected processing audit fields set, got %+v / %v", approved.ProcessedBy, approved.ProcessedAt)
	}

	balance, err := walletSvc.GetBalance(constants.WalletOwnerSeller, seller.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.String() != "600.00" {
		t.Fatalf("expected balance 600.00 after payout, got %s", balance.String())
	}

	var txn models.WalletTransaction
	if err := db.Where("reference = ?", fmt.Sprintf("withdrawal:seller:%d", req.ID)).First(&txn).Error; err != nil {
		t.Fatalf("load payout ledger entry failed: %v", err)
	}
	if txn.Direction != constants.WalletTxnDirectionOut || txn.Type != constants.WalletTxnTypeWithdrawal {
		t.Fatalf("unexpected ledger entry %s/%s", txn.Direction, txn.Type)
	}

	// A decided request cannot be decided again.
	if _, err := svc.Approve(DecideWithdrawalInput{
		OwnerKind: constants.WithdrawalOwnerSeller,
		RequestID: req.ID,
		AdminID:   1,
	}); !errors.Is(err, ErrWithdrawalAlreadyProcessed) {
		t.Fatalf("expected already processed, got %v", err)
	}
}

func TestApproveWithdrawalFailsWhenBalanceDropped(t *testing.T) {
	svc, walletSvc, db := setupWithdrawalServiceTest(t)
	seller := createWalletTestSeller(t, db, "withdraw-dropped@example.com", "500")

	created, err := svc.Create(sellerWithdrawalInput(t, seller.ID, "400"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	req := created.(*models.WithdrawalRequest)

	// Balance drains between request and approval.
	if _, err := walletSvc.AdminAdjustBalance(WalletAdjustInput{
		OwnerKind: constants.WalletOwnerSeller,
		OwnerID:   seller.ID,
		Delta:     walletTestMoney(t, "-300"),
	}); err != nil {
		t.Fatalf("drain balance failed: %v", err)
	}

	if _, err := svc.Approve(DecideWithdrawalInput{
		OwnerKind: constants.WithdrawalOwnerSeller,
		RequestID: req.ID,
		AdminID:   1,
	}); !errors.Is(err, ErrWalletInsufficientBalance) {
		t.Fatalf("expected insufficient balance at approval, got %v", err)
	}

	// The request stays pending for a later decision.
	var reloaded models.WithdrawalRequest
	if err := db.First(&reloaded, req.ID).Error; err != nil {
		t.Fatalf("reload request failed: %v", err)
	}
	if reloaded.Status != constants.WithdrawalStatusPending {
		t.Fatalf("expected request still pending, got %s", reloaded.Status)
	}
}

func TestRejectWithdrawalRequiresReason(t *testing.T) {
	svc, walletSvc, db := setupWithdrawalServiceTest(t)
	seller := createWalletTestSeller(t, db, "withdraw-reject@example.com", "1000")

	created, err := svc.Create(sellerWithdrawalInput(t, seller.ID, "300"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	req := created.(*models.WithdrawalRequest)

	if _, err := svc.Reject(DecideWithdrawalInput{
		OwnerKind: constants.WithdrawalOwnerSeller,
		RequestID: req.ID,
		AdminID:   1,
	}); !errors.Is(err, ErrWithdrawalReasonRequired) {
		t.Fatalf("expected reason required, got %v", err)
	}

	decided, err := svc.Reject(DecideWithdrawalInput{
		OwnerKind: constants.WithdrawalOwnerSeller,
		RequestID: req.ID,
		AdminID:   1,
		Reason:    "payment details do not match account",
	})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	rejected := decided.(*models.WithdrawalRequest)
	if rejected.Status != constants.WithdrawalStatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
	if rejected.RejectionReason == "" {
		t.Fatalf("expected rejection reason recorded")
	}

	balance, err := walletSvc.GetBalance(constants.WalletOwnerSeller, seller.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.String() != "1000.00" {
		t.Fatalf("expected no funds moved on reject, got %s", balance.String())
	}
}

func TestBuyerWithdrawalLifecycle(t *testing.T) {
	svc, walletSvc, db := setupWithdrawalServiceTest(t)
	buyer := createWalletTestBuyer(t, db, "buyer-withdraw@example.com", "800")

	created, err := svc.Create(CreateWithdrawalInput{
		OwnerKind:      constants.WithdrawalOwnerBuyer,
		OwnerID:        buyer.ID,
		Amount:         walletTestMoney(t, "250"),
		PaymentMethod:  constants.PaymentMethodVodafoneCash,
		PaymentDetails: "+201000000000",
	})
	if err != nil {
		t.Fatalf("create buyer request failed: %v", err)
	}
	req := created.(*models.BuyerWithdrawalRequest)
	if req.Status != constants.WithdrawalStatusPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}

	decided, err := svc.Approve(DecideWithdrawalInput{
		OwnerKind: constants.WithdrawalOwnerBuyer,
		RequestID: req.ID,
		AdminID:   1,
	})
	if err != nil {
		t.Fatalf("approve buyer request failed: %v", err)
	}
	approved := decided.(*models.BuyerWithdrawalRequest)
	if approved.Status != constants.WithdrawalStatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	balance, err := walletSvc.GetBalance(constants.WalletOwnerBuyer, buyer.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.String() != "550.00" {
		t.Fatalf("expected balance 550.00 after payout, got %s", balance.String())
	}
}

func TestWithdrawalBoundsAndMethods(t *testing.T) {
	svc, _, _ := setupWithdrawalServiceTest(t)

	minAmount, maxAmount := svc.Bounds()
	if minAmount.String() != "100.00" || maxAmount.String() != "5000.00" {
		t.Fatalf("expected bounds 100.00/5000.00, got %s/%s", minAmount.String(), maxAmount.String())
	}

	methods := svc.Methods()
	if len(methods) != 2 {
		t.Fatalf("expected 2 enabled methods, got %v", methods)
	}
}
