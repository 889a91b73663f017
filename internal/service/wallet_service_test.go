package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupWalletServiceTest(t *testing.T) (*WalletService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:wallet_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Seller{}, &models.WalletTransaction{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	return NewWalletService(repository.NewWalletRepository(db)), db
}

func walletTestMoney(t *testing.T, value string) models.Money {
	t.Helper()
	m, ok := models.ParseMoney(value)
	if !ok {
		t.Fatalf("bad money literal: %s", value)
	}
	return m
}

func createWalletTestBuyer(t *testing.T, db *gorm.DB, email, balance string) *models.User {
	t.Helper()
	user := &models.User{
		Email:         email,
		DisplayName:   "wallet test buyer",
		Status:        "active",
		WalletBalance: walletTestMoney(t, balance),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create buyer failed: %v", err)
	}
	return user
}

func createWalletTestSeller(t *testing.T, db *gorm.DB, email, balance string) *models.Seller {
	t.Helper()
	seller := &models.Seller{
		Email:         email,
		ShopName:      "wallet test shop",
		Status:        "active",
		CityID:        1,
		WalletBalance: walletTestMoney(t, balance),
	}
	if err := db.Create(seller).Error; err != nil {
		t.Fatalf("create seller failed: %v", err)
	}
	return seller
}

func TestCreditInTxAppliesOnceByReference(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	buyer := createWalletTestBuyer(t, db, "credit-once@example.com", "0")

	input := WalletMutationInput{
		OwnerKind: constants.WalletOwnerBuyer,
		OwnerID:   buyer.ID,
		Amount:    walletTestMoney(t, "100"),
		TxnType:   constants.WalletTxnTypeOrderRefund,
		Reference: "order:42:buyer_refund",
		Remark:    "refund replay test",
	}

	var first, second *models.WalletTransaction
	if err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		first, err = svc.CreditInTx(tx, input)
		return err
	}); err != nil {
		t.Fatalf("first credit failed: %v", err)
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		second, err = svc.CreditInTx(tx, input)
		return err
	}); err != nil {
		t.Fatalf("replayed credit failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same ledger row for replay, got %d and %d", first.ID, second.ID)
	}

	balance, err := svc.GetBalance(constants.WalletOwnerBuyer, buyer.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.String() != "100.00" {
		t.Fatalf("expected balance 100.00 after replay, got %s", balance.String())
	}

	var count int64
	if err := db.Model(&models.WalletTransaction{}).
		Where("reference = ?", input.Reference).Count(&count).Error; err != nil {
		t.Fatalf("count transactions failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one ledger row, got %d", count)
	}
}

func TestDebitInTxRecordsBalances(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	buyer := createWalletTestBuyer(t, db, "debit-balances@example.com", "200")

	var txn *models.WalletTransaction
	if err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = svc.DebitInTx(tx, WalletMutationInput{
			OwnerKind: constants.WalletOwnerBuyer,
			OwnerID:   buyer.ID,
			Amount:    walletTestMoney(t, "75"),
			TxnType:   constants.WalletTxnTypeWithdrawal,
			Reference: "withdrawal:buyer:1",
		})
		return err
	}); err != nil {
		t.Fatalf("debit failed: %v", err)
	}

	if txn.Direction != constants.WalletTxnDirectionOut {
		t.Fatalf("expected out direction, got %s", txn.Direction)
	}
	if txn.BalanceBefore.String() != "200.00" || txn.BalanceAfter.String() != "125.00" {
		t.Fatalf("expected balances 200.00 -> 125.00, got %s -> %s",
			txn.BalanceBefore.String(), txn.BalanceAfter.String())
	}

	balance, err := svc.GetBalance(constants.WalletOwnerBuyer, buyer.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.String() != "125.00" {
		t.Fatalf("expected balance 125.00, got %s", balance.String())
	}
}

func TestDebitInTxInsufficientBalance(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	seller := createWalletTestSeller(t, db, "debit-short@example.com", "50")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := svc.DebitInTx(tx, WalletMutationInput{
			OwnerKind: constants.WalletOwnerSeller,
			OwnerID:   seller.ID,
			Amount:    walletTestMoney(t, "80"),
			TxnType:   constants.WalletTxnTypeWithdrawal,
			Reference: "withdrawal:seller:1",
		})
		return err
	})
	if !errors.Is(err, ErrWalletInsufficientBalance) {
		t.Fatalf("expected insufficient balance error, got %v", err)
	}

	balance, err := svc.GetBalance(constants.WalletOwnerSeller, seller.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.String() != "50.00" {
		t.Fatalf("expected balance untouched at 50.00, got %s", balance.String())
	}

	var count int64
	if err := db.Model(&models.WalletTransaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count transactions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no ledger rows after failed debit, got %d", count)
	}
}

func TestCreditInTxRejectsInvalidInput(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	buyer := createWalletTestBuyer(t, db, "credit-invalid@example.com", "0")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := svc.CreditInTx(tx, WalletMutationInput{
			OwnerKind: constants.WalletOwnerBuyer,
			OwnerID:   buyer.ID,
			Amount:    walletTestMoney(t, "0"),
			TxnType:   constants.WalletTxnTypeAdminAdjust,
			Reference: "adjust:zero",
		})
		return err
	})
	if !errors.Is(err, ErrWalletInvalidAmount) {
		t.Fatalf("expected invalid amount for zero credit, got %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := svc.CreditInTx(tx, WalletMutationInput{
			OwnerKind: constants.WalletOwnerBuyer,
			OwnerID:   9999,
			Amount:    walletTestMoney(t, "10"),
			TxnType:   constants.WalletTxnTypeAdminAdjust,
			Reference: "adjust:missing-owner",
		})
		return err
	})
	if !errors.Is(err, ErrWalletOwnerNotFound) {
		t.Fatalf("expected owner not found for unknown buyer, got %v", err)
	}
}

func TestAdminAdjustBalance(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	seller := createWalletTestSeller(t, db, "adjust@example.com", "30")

	txn, err := svc.AdminAdjustBalance(WalletAdjustInput{
		OwnerKind: constants.WalletOwnerSeller,
		OwnerID:   seller.ID,
		Delta:     walletTestMoney(t, "20"),
		Remark:    "promo credit",
	})
	if err != nil {
		t.Fatalf("positive adjust failed: %v", err)
	}
	if txn.Direction != constants.WalletTxnDirectionIn || txn.BalanceAfter.String() != "50.00" {
		t.Fatalf("expected in/50.00, got %s/%s", txn.Direction, txn.BalanceAfter.String())
	}

	txn, err = svc.AdminAdjustBalance(WalletAdjustInput{
		OwnerKind: constants.WalletOwnerSeller,
		OwnerID:   seller.ID,
		Delta:     walletTestMoney(t, "-15"),
	})
	if err != nil {
		t.Fatalf("negative adjust failed: %v", err)
	}
	if txn.Direction != constants.WalletTxnDirectionOut || txn.BalanceAfter.String() != "35.00" {
		t.Fatalf("expected out/35.00, got %s/%s", txn.Direction, txn.BalanceAfter.String())
	}

	if _, err := svc.AdminAdjustBalance(WalletAdjustInput{
		OwnerKind: constants.WalletOwnerSeller,
		OwnerID:   seller.ID,
		Delta:     walletTestMoney(t, "-100"),
	}); !errors.Is(err, ErrWalletInsufficientBalance) {
		t.Fatalf("expected insufficient balance for over-debit, got %v", err)
	}

	if _, err := svc.AdminAdjustBalance(WalletAdjustInput{
		OwnerKind: constants.WalletOwnerSeller,
		OwnerID:   seller.ID,
		Delta:     walletTestMoney(t, "0"),
	}); !errors.Is(err, ErrWalletInvalidAmount) {
		t.Fatalf("expected invalid amount for zero delta, got %v", err)
	}

	balance, err := svc.GetBalance(constants.WalletOwnerSeller, seller.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.String() != "35.00" {
		t.Fatalf("expected balance 35.00, got %s", balance.String())
	}
}
