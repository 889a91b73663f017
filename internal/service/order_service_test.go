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

type orderServiceTestEnv struct {
	db            *gorm.DB
	orderSvc      *OrderService
	walletSvc     *WalletService
	notifySvc     *NotificationService
	orderRepo     repository.OrderRepository
	personnelRepo repository.DeliveryPersonnelRepository
}

func setupOrderServiceTest(t *testing.T) *orderServiceTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Seller{},
		&models.City{},
		&models.DeliveryPersonnel{},
		&models.Order{},
		&models.OrderHistory{},
		&models.WalletTransaction{},
		&models.PlatformProfit{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	personnelRepo := repository.NewDeliveryPersonnelRepository(db)
	walletSvc := NewWalletService(repository.NewWalletRepository(db))
	profitSvc := NewProfitService(repository.NewPlatformProfitRepository(db), repository.NewCityRepository(db))
	notifySvc := NewNotificationService(repository.NewNotificationRepository(db), repository.NewAdminRepository(db), nil)
	orderSvc := NewOrderService(
		orderRepo,
		repository.NewOrderHistoryRepository(db),
		personnelRepo,
		repository.NewUserRepository(db),
		repository.NewSellerRepository(db),
		repository.NewCityRepository(db),
		walletSvc,
		profitSvc,
		notifySvc,
	)

	return &orderServiceTestEnv{
		db:            db,
		orderSvc:      orderSvc,
		walletSvc:     walletSvc,
		notifySvc:     notifySvc,
		orderRepo:     orderRepo,
		personnelRepo: personnelRepo,
	}
}

func createOrderTestCity(t *testing.T, db *gorm.DB, commissionPercent string) *models.City {
	t.Helper()
	city := &models.City{
		Name:                      fmt.Sprintf("city-%d", time.Now().UnixNano()),
		DeliveryFee:               walletTestMoney(t, "50"),
		PlatformCommissionPercent: walletTestMoney(t, commissionPercent),
	}
	if err := db.Create(city).Error; err != nil {
		t.Fatalf("create city failed: %v", err)
	}
	return city
}

func createOrderTestPersonnel(t *testing.T, db *gorm.DB, name string) *models.DeliveryPersonnel {
	t.Helper()
	personnel := &models.DeliveryPersonnel{
		Name:        name,
		Phone:       fmt.Sprintf("+20%d", time.Now().UnixNano()),
		Status:      constants.PersonnelStatusActive,
		IsAvailable: true,
	}
	if err := db.Create(personnel).Error; err != nil {
		t.Fatalf("create personnel failed: %v", err)
	}
	return personnel
}

// createOrderTestFixture seeds a buyer, a seller, and a city and opens an
// order for the given total.
func createOrderTestFixture(t *testing.T, env *orderServiceTestEnv, total, commissionPercent string) (*models.Order, *models.User, *models.Seller) {
	t.Helper()

	city := createOrderTestCity(t, env.db, commissionPercent)
	buyer := createWalletTestBuyer(t, env.db, fmt.Sprintf("buyer-%d@example.com", time.Now().UnixNano()), "0")
	seller := createWalletTestSeller(t, env.db, fmt.Sprintf("seller-%d@example.com", time.Now().UnixNano()), "0")

	order, err := env.orderSvc.Create(CreateOrderInput{
		BuyerID:    buyer.ID,
		SellerID:   seller.ID,
		CityID:     city.ID,
		TotalPrice: walletTestMoney(t, total),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order, buyer, seller
}

func adminActor() Actor {
	return Actor{ID: 1, Role: constants.ActorRoleAdmin}
}

func buyerActor(id uint) Actor {
	return Actor{ID: id, Role: constants.ActorRoleBuyer}
}

func sellerActor(id uint) Actor {
	return Actor{ID: id, Role: constants.ActorRoleSeller}
}

// advanceOrderToReady walks an order through the approval chain until it
// sits in ready_for_delivery.
func advanceOrderToReady(t *testing.T, env *orderServiceTestEnv, orderID, sellerID uint) {
	t.Helper()
	if _, err := env.orderSvc.Approve(orderID, adminActor()); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := env.orderSvc.SellerApprove(orderID, sellerActor(sellerID)); err != nil {
		t.Fatalf("seller approve failed: %v", err)
	}
	if _, err := env.orderSvc.WorkComplete(orderID, sellerActor(sellerID)); err != nil {
		t.Fatalf("work complete failed: %v", err)
	}
	if _, err := env.orderSvc.MarkReadyForDelivery(orderID, sellerActor(sellerID)); err != nil {
		t.Fatalf("mark ready failed: %v", err)
	}
}

func claimOrderSlot(t *testing.T, env *orderServiceTestEnv, role string, orderID, personnelID uint) {
	t.Helper()
	var affected int64
	var err error
	switch role {
	case constants.AssignmentRolePickup:
		affected, err = env.orderRepo.ClaimPickup(orderID, personnelID)
	case constants.AssignmentRoleDelivery:
		affected, err = env.orderRepo.ClaimDelivery(orderID, personnelID)
	default:
		t.Fatalf("unknown role %s", role)
	}
	if err != nil {
		t.Fatalf("claim %s failed: %v", role, err)
	}
	if affected != 1 {
		t.Fatalf("expected claim %s to win, affected %d", role, affected)
	}
}

func TestCreateOrderStartsPendingApproval(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, buyer, _ := createOrderTestFixture(t, env, "1000", "10")

	if order.Status != constants.OrderStatusPendingAdminApproval {
		t.Fatalf("expected pending_admin_approval, got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid, got %s", order.PaymentStatus)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected generated order number")
	}

	var history []models.OrderHistory
	if err := env.db.Where("order_id = ?", order.ID).Find(&history).Error; err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(history) != 1 || history[0].ActorRole != constants.ActorRoleBuyer {
		t.Fatalf("expected one buyer history entry, got %+v", history)
	}
	if history[0].ActorID == nil || *history[0].ActorID != buyer.ID {
		t.Fatalf("expected history actor %d, got %+v", buyer.ID, history[0].ActorID)
	}
}

func TestOrderTransitionsRejectWrongPredecessor(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, _, seller := createOrderTestFixture(t, env, "500", "10")

	// Seller cannot accept before the admin confirms payment.
	if _, err := env.orderSvc.SellerApprove(order.ID, sellerActor(seller.ID)); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid for early seller approve, got %v", err)
	}

	if _, err := env.orderSvc.Approve(order.ID, adminActor()); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := env.orderSvc.Approve(order.ID, adminActor()); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid for double approve, got %v", err)
	}

	// Skipping work_completed is not allowed.
	if _, err := env.orderSvc.SellerApprove(order.ID, sellerActor(seller.ID)); err != nil {
		t.Fatalf("seller approve failed: %v", err)
	}
	if _, err := env.orderSvc.MarkReadyForDelivery(order.ID, sellerActor(seller.ID)); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid for ready before work complete, got %v", err)
	}
}

func TestOrderApproveRequiresAdmin(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, buyer, _ := createOrderTestFixture(t, env, "500", "10")

	if _, err := env.orderSvc.Approve(order.ID, buyerActor(buyer.ID)); !errors.Is(err, ErrActorForbidden) {
		t.Fatalf("expected forbidden for buyer approve, got %v", err)
	}
}

func TestOrderLifecycleSettlesSellerAndProfit(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, _, seller := createOrderTestFixture(t, env, "1000", "10")

	advanceOrderToReady(t, env, order.ID, seller.ID)
	pickup := createOrderTestPersonnel(t, env.db, "pickup rider")
	courier := createOrderTestPersonnel(t, env.db, "delivery rider")
	claimOrderSlot(t, env, constants.AssignmentRolePickup, order.ID, pickup.ID)
	claimOrderSlot(t, env, constants.AssignmentRoleDelivery, order.ID, courier.ID)

	picked, err := env.orderSvc.PickUp(order.ID, pickup.ID, "")
	if err != nil {
		t.Fatalf("pick up failed: %v", err)
	}
	if picked.Status != constants.OrderStatusOutForDelivery {
		t.Fatalf("expected out_for_delivery after pickup with courier bound, got %s", picked.Status)
	}

	delivered, err := env.orderSvc.Deliver(order.ID, courier.ID)
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", delivered.Status)
	}

	completed, err := env.orderSvc.Complete(order.ID, adminActor())
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	var profit models.PlatformProfit
	if err := env.db.Where("order_id = ?", order.ID).First(&profit).Error; err != nil {
		t.Fatalf("load profit failed: %v", err)
	}
	if profit.Amount.String() != "100.00" {
		t.Fatalf("expected commission 100.00 at 10%%, got %s", profit.Amount.String())
	}

	balance, err := env.walletSvc.GetBalance(constants.WalletOwnerSeller, seller.ID)
	if err != nil {
		t.Fatalf("get seller balance failed: %v", err)
	}
	if balance.String() != "900.00" {
		t.Fatalf("expected seller credited 900.00 net of commission, got %s", balance.String())
	}

	// Both riders made one trip each.
	for _, id := range []uint{pickup.ID, courier.ID} {
		p, err := env.personnelRepo.GetByID(id)
		if err != nil || p == nil {
			t.Fatalf("load personnel %d failed: %v", id, err)
		}
		if p.TripsCount != 1 {
			t.Fatalf("expected trips_count 1 for personnel %d, got %d", id, p.TripsCount)
		}
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, _, seller := createOrderTestFixture(t, env, "200", "12.5")

	advanceOrderToReady(t, env, order.ID, seller.ID)
	pickup := createOrderTestPersonnel(t, env.db, "pickup rider")
	courier := createOrderTestPersonnel(t, env.db, "delivery rider")
	claimOrderSlot(t, env, constants.AssignmentRolePickup, order.ID, pickup.ID)
	claimOrderSlot(t, env, constants.AssignmentRoleDelivery, order.ID, courier.ID)
	if _, err := env.orderSvc.PickUp(order.ID, pickup.ID, ""); err != nil {
		t.Fatalf("pick up failed: %v", err)
	}
	if _, err := env.orderSvc.Deliver(order.ID, courier.ID); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	if _, err := env.orderSvc.Complete(order.ID, adminActor()); err != nil {
		t.Fatalf("first complete failed: %v", err)
	}
	again, err := env.orderSvc.Complete(order.ID, adminActor())
	if err != nil {
		t.Fatalf("second complete failed: %v", err)
	}
	if again.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected completed on replay, got %s", again.Status)
	}

	var profitCount int64
	if err := env.db.Model(&models.PlatformProfit{}).Where("order_id = ?", order.ID).Count(&profitCount).Error; err != nil {
		t.Fatalf("count profits failed: %v", err)
	}
	if profitCount != 1 {
		t.Fatalf("expected one profit row, got %d", profitCount)
	}

	balance, err := env.walletSvc.GetBalance(constants.WalletOwnerSeller, seller.ID)
	if err != nil {
		t.Fatalf("get seller balance failed: %v", err)
	}
	if balance.String() != "175.00" {
		t.Fatalf("expected single earning credit of 175.00, got %s", balance.String())
	}

	// The replay is silent: the seller hears about completion once.
	var notifyCount int64
	if err := env.db.Model(&models.Notification{}).
		Where("recipient_role = ? AND recipient_id = ? AND kind = ?",
			constants.ActorRoleSeller, seller.ID, constants.NotificationKindOrderCompleted).
		Count(&notifyCount).Error; err != nil {
		t.Fatalf("count notifications failed: %v", err)
	}
	if notifyCount != 1 {
		t.Fatalf("expected one completion notification, got %d", notifyCount)
	}
}

func TestPickUpRequiresAssignedPersonnel(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, _, seller := createOrderTestFixture(t, env, "300", "10")

	advanceOrderToReady(t, env, order.ID, seller.ID)
	pickup := createOrderTestPersonnel(t, env.db, "assigned rider")
	stranger := createOrderTestPersonnel(t, env.db, "other rider")
	claimOrderSlot(t, env, constants.AssignmentRolePickup, order.ID, pickup.ID)

	if _, err := env.orderSvc.PickUp(order.ID, stranger.ID, ""); !errors.Is(err, ErrActorForbidden) {
		t.Fatalf("expected forbidden for unassigned rider, got %v", err)
	}
}

func TestPickUpBeforeDeliveryAssignmentStaysReady(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, _, seller := createOrderTestFixture(t, env, "300", "10")

	advanceOrderToReady(t, env, order.ID, seller.ID)
	pickup := createOrderTestPersonnel(t, env.db, "pickup rider")
	claimOrderSlot(t, env, constants.AssignmentRolePickup, order.ID, pickup.ID)

	picked, err := env.orderSvc.PickUp(order.ID, pickup.ID, "left warehouse")
	if err != nil {
		t.Fatalf("pick up failed: %v", err)
	}
	if picked.Status != constants.OrderStatusReadyForDelivery {
		t.Fatalf("expected ready_for_delivery until a courier is bound, got %s", picked.Status)
	}
	if picked.DeliveryPickedUpAt == nil {
		t.Fatalf("expected pickup timestamp recorded")
	}

	// Binding the courier finishes the hand-off.
	courier := createOrderTestPersonnel(t, env.db, "late courier")
	claimOrderSlot(t, env, constants.AssignmentRoleDelivery, order.ID, courier.ID)
	advanced, err := env.orderSvc.AdvanceAfterDeliveryAssignment(order.ID, courier.ID)
	if err != nil {
		t.Fatalf("advance after assignment failed: %v", err)
	}
	if advanced.Status != constants.OrderStatusOutForDelivery {
		t.Fatalf("expected out_for_delivery after courier bound, got %s", advanced.Status)
	}
}

func TestSuspendOnlyFromOutForDelivery(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, _, seller := createOrderTestFixture(t, env, "400", "10")

	advanceOrderToReady(t, env, order.ID, seller.ID)
	pickup := createOrderTestPersonnel(t, env.db, "pickup rider")
	courier := createOrderTestPersonnel(t, env.db, "delivery rider")
	claimOrderSlot(t, env, constants.AssignmentRolePickup, order.ID, pickup.ID)

	// Still ready_for_delivery.
	claimOrderSlot(t, env, constants.AssignmentRoleDelivery, order.ID, courier.ID)
	if _, err := env.orderSvc.Suspend(order.ID, courier.ID, "buyer unreachable"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid before transit, got %v", err)
	}

	if _, err := env.orderSvc.PickUp(order.ID, pickup.ID, ""); err != nil {
		t.Fatalf("pick up failed: %v", err)
	}

	if _, err := env.orderSvc.Suspend(order.ID, courier.ID, ""); !errors.Is(err, ErrOrderReasonRequired) {
		t.Fatalf("expected reason required, got %v", err)
	}
	if _, err := env.orderSvc.Suspend(order.ID, pickup.ID, "wrong rider"); !errors.Is(err, ErrActorForbidden) {
		t.Fatalf("expected forbidden for non-courier suspend, got %v", err)
	}

	suspended, err := env.orderSvc.Suspend(order.ID, courier.ID, "buyer unreachable")
	if err != nil {
		t.Fatalf("suspend failed: %v", err)
	}
	if suspended.Status != constants.OrderStatusSuspended || suspended.SuspendReason != "buyer unreachable" {
		t.Fatalf("expected suspended with reason, got %s / %q", suspended.Status, suspended.SuspendReason)
	}
}

func TestResumeBackToTransit(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, _, seller := createOrderTestFixture(t, env, "400", "10")

	advanceOrderToReady(t, env, order.ID, seller.ID)
	pickup := createOrderTestPersonnel(t, env.db, "pickup rider")
	courier := createOrderTestPersonnel(t, env.db, "delivery rider")
	claimOrderSlot(t, env, constants.AssignmentRolePickup, order.ID, pickup.ID)
	claimOrderSlot(t, env, constants.AssignmentRoleDelivery, order.ID, courier.ID)
	if _, err := env.orderSvc.PickUp(order.ID, pickup.ID, ""); err != nil {
		t.Fatalf("pick up failed: %v", err)
	}
	if _, err := env.orderSvc.Suspend(order.ID, courier.ID, "vehicle breakdown"); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}

	if _, err := env.orderSvc.Resume(order.ID, adminActor(), "delivered"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid for illegal resume target, got %v", err)
	}

	resumed, err := env.orderSvc.Resume(order.ID, adminActor(), "")
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if resumed.Status != constants.OrderStatusOutForDelivery {
		t.Fatalf("expected out_for_delivery after resume, got %s", resumed.Status)
	}
	if resumed.SuspendReason != "" || resumed.SuspendedAt != nil {
		t.Fatalf("expected suspend fields cleared, got %q / %v", resumed.SuspendReason, resumed.SuspendedAt)
	}
	if resumed.DeliveryPersonID == nil || *resumed.DeliveryPersonID != courier.ID {
		t.Fatalf("expected courier kept on resume to transit, got %+v", resumed.DeliveryPersonID)
	}
}

func TestResumeToReadyClearsAssignments(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, _, seller := createOrderTestFixture(t, env, "400", "10")

	advanceOrderToReady(t, env, order.ID, seller.ID)
	pickup := createOrderTestPersonnel(t, env.db, "pickup rider")
	courier := createOrderTestPersonnel(t, env.db, "delivery rider")
	claimOrderSlot(t, env, constants.AssignmentRolePickup, order.ID, pickup.ID)
	claimOrderSlot(t, env, constants.AssignmentRoleDelivery, order.ID, courier.ID)
	if _, err := env.orderSvc.PickUp(order.ID, pickup.ID, ""); err != nil {
		t.Fatalf("pick up failed: %v", err)
	}
	if _, err := env.orderSvc.Suspend(order.ID, courier.ID, "package damaged"); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}

	resumed, err := env.orderSvc.Resume(order.ID, adminActor(), constants.OrderStatusReadyForDelivery)
	if err != nil {
		t.Fatalf("resume to ready failed: %v", err)
	}
	if resumed.Status != constants.OrderStatusReadyForDelivery {
		t.Fatalf("expected ready_for_delivery, got %s", resumed.Status)
	}
	if resumed.PickupPersonID != nil || resumed.DeliveryPersonID != nil || resumed.DeliveryPickedUpAt != nil {
		t.Fatalf("expected assignment slots cleared, got %+v / %+v / %v",
			resumed.PickupPersonID, resumed.DeliveryPersonID, resumed.DeliveryPickedUpAt)
	}
	if resumed.DeliveryScheduledAt == nil {
		t.Fatalf("expected delivery_scheduled_at reset")
	}
}

func TestCancelRefundsPaidOrder(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, buyer, _ := createOrderTestFixture(t, env, "600", "10")

	if _, err := env.orderSvc.Approve(order.ID, adminActor()); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	cancelled, err := env.orderSvc.Cancel(order.ID, buyerActor(buyer.ID), "changed my mind")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected refunded, got %s", cancelled.PaymentStatus)
	}

	balance, err := env.walletSvc.GetBalance(constants.WalletOwnerBuyer, buyer.ID)
	if err != nil {
		t.Fatalf("get buyer balance failed: %v", err)
	}
	if balance.String() != "600.00" {
		t.Fatalf("expected full refund 600.00, got %s", balance.String())
	}

	// Terminal states stay terminal.
	if _, err := env.orderSvc.Cancel(order.ID, buyerActor(buyer.ID), "again"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid for cancelling cancelled order, got %v", err)
	}
}

func TestCancelUnpaidOrderMovesNoFunds(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, buyer, seller := createOrderTestFixture(t, env, "600", "10")

	if _, err := env.orderSvc.Cancel(order.ID, sellerActor(seller.ID), "cannot fulfil"); err != nil {
		t.Fatalf("seller cancel failed: %v", err)
	}

	balance, err := env.walletSvc.GetBalance(constants.WalletOwnerBuyer, buyer.ID)
	if err != nil {
		t.Fatalf("get buyer balance failed: %v", err)
	}
	if !balance.Decimal.IsZero() {
		t.Fatalf("expected no refund for unpaid order, got %s", balance.String())
	}
}

func TestCancelForbiddenForUnrelatedActor(t *testing.T) {
	env := setupOrderServiceTest(t)
	order, _, _ := createOrderTestFixture(t, env, "600", "10")

	if _, err := env.orderSvc.Cancel(order.ID, buyerActor(9999), "not my order"); !errors.Is(err, ErrActorForbidden) {
		t.Fatalf("expected forbidden for unrelated buyer, got %v", err)
	}
}

func TestRejectRefundsDepositOnly(t *testing.T) {
	env := setupOrderServiceTest(t)

	city := createOrderTestCity(t, env.db, "10")
	buyer := createWalletTestBuyer(t, env.db, "deposit-buyer@example.com", "0")
	seller := createWalletTestSeller(t, env.db, "deposit-seller@example.com", "0")

	deposit := walletTestMoney(t, "150")
	order, err := env.orderSvc.Create(CreateOrderInput{
		BuyerID:       buyer.ID,
		SellerID:      seller.ID,
		CityID:        city.ID,
		TotalPrice:    walletTestMoney(t, "1000"),
		DepositAmount: &deposit,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := env.orderSvc.Approve(order.ID, adminActor()); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if _, err := env.orderSvc.Reject(order.ID, adminActor(), ""); !errors.Is(err, ErrOrderReasonRequired) {
		t.Fatalf("expected reason required, got %v", err)
	}

	rejected, err := env.orderSvc.Reject(order.ID, adminActor(), "listing violates policy")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != constants.OrderStatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}

	balance, err := env.walletSvc.GetBalance(constants.WalletOwnerBuyer, buyer.ID)
	if err != nil {
		t.Fatalf("get buyer balance failed: %v", err)
	}
	if balance.String() != "150.00" {
		t.Fatalf("expected deposit refund 150.00, got %s", balance.String())
	}
}
