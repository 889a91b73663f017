package service

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderTerminalStatuses are the states no transition may leave.
var orderTerminalStatuses = map[string]bool{
	constants.OrderStatusCompleted: true,
	constants.OrderStatusRejected:  true,
	constants.OrderStatusCancelled: true,
}

// orderForwardTransitions maps each forward target status to its single
// legal predecessor.
var orderForwardTransitions = map[string]string{
	constants.OrderStatusAdminApproved:    constants.OrderStatusPendingAdminApproval,
	constants.OrderStatusSellerApproved:   constants.OrderStatusAdminApproved,
	constants.OrderStatusWorkCompleted:    constants.OrderStatusSellerApproved,
	constants.OrderStatusReadyForDelivery: constants.OrderStatusWorkCompleted,
	constants.OrderStatusOutForDelivery:   constants.OrderStatusReadyForDelivery,
	constants.OrderStatusDelivered:        constants.OrderStatusOutForDelivery,
	constants.OrderStatusCompleted:        constants.OrderStatusDelivered,
	constants.OrderStatusSuspended:        constants.OrderStatusOutForDelivery,
}

// OrderService owns the order state machine. Every transition runs as
// one transaction: lock the order row, check the predecessor state,
// mutate, append history. Callers get the order back as committed.
type OrderService struct {
	orderRepo     repository.OrderRepository
	historyRepo   repository.OrderHistoryRepository
	personnelRepo repository.DeliveryPersonnelRepository
	userRepo      repository.UserRepository
	sellerRepo    repository.SellerRepository
	cityRepo      repository.CityRepository
	walletSvc     *WalletService
	profitSvc     *ProfitService
	notifySvc     *NotificationService
}

// CreateOrderInput describes a new buyer order.
type CreateOrderInput struct {
	BuyerID       uint
	SellerID      uint
	CityID        uint
	TotalPrice    models.Money
	DepositAmount *models.Money
	Description   string
}

// NewOrderService creates an order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	historyRepo repository.OrderHistoryRepository,
	personnelRepo repository.DeliveryPersonnelRepository,
	userRepo repository.UserRepository,
	sellerRepo repository.SellerRepository,
	cityRepo repository.CityRepository,
	walletSvc *WalletService,
	profitSvc *ProfitService,
	notifySvc *NotificationService,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		historyRepo:   historyRepo,
		personnelRepo: personnelRepo,
		userRepo:      userRepo,
		sellerRepo:    sellerRepo,
		cityRepo:      cityRepo,
		walletSvc:     walletSvc,
		profitSvc:     profitSvc,
		notifySvc:     notifySvc,
	}
}

// Create opens a new order in pending_admin_approval.
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if input.TotalPrice.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrWalletInvalidAmount
	}
	buyer, err := s.userRepo.GetByID(input.BuyerID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, ErrUserNotFound
	}
	seller, err := s.sellerRepo.GetByID(input.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, ErrSellerNotFound
	}
	city, err := s.cityRepo.GetByID(input.CityID)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}

	order := &models.Order{
		OrderNo:       generateOrderNo(),
		Status:        constants.OrderStatusPendingAdminApproval,
		PaymentStatus: constants.PaymentStatusUnpaid,
		TotalPrice:    input.TotalPrice,
		DepositAmount: input.DepositAmount,
		Description:   strings.TrimSpace(input.Description),
		BuyerID:       input.BuyerID,
		SellerID:      input.SellerID,
		CityID:        input.CityID,
	}

	if err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		actor := Actor{ID: input.BuyerID, Role: constants.ActorRoleBuyer}
		return s.appendHistory(tx, order.ID, order.Status, actor, "order created")
	}); err != nil {
		return nil, err
	}

	s.notifySvc.NotifyAdmins(constants.NotificationKindOrderReady,
		fmt.Sprintf("order %s is waiting for payment approval", order.OrderNo),
		orderLink(order.ID))
	return order, nil
}

// Approve confirms payment and moves the order to admin_approved.
func (s *OrderService) Approve(orderID uint, actor Actor) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrActorForbidden
	}
	now := time.Now()
	order, err := s.transition(orderID, constants.OrderStatusAdminApproved, actor, "payment approved", map[string]interface{}{
		"payment_status":    constants.PaymentStatusPaid,
		"admin_approved_at": now,
	}, nil)
	if err != nil {
		return nil, err
	}
	s.notifySvc.Notify(constants.ActorRoleSeller, order.SellerID, constants.NotificationKindOrderApproved,
		fmt.Sprintf("order %s has been approved, awaiting your confirmation", order.OrderNo), orderLink(order.ID))
	s.notifySvc.Notify(constants.ActorRoleBuyer, order.BuyerID, constants.NotificationKindOrderApproved,
		fmt.Sprintf("payment for order %s has been confirmed", order.OrderNo), orderLink(order.ID))
	return order, nil
}

// SellerApprove records the seller's acceptance of the work.
func (s *OrderService) SellerApprove(orderID uint, actor Actor) (*models.Order, error) {
	now := time.Now()
	return s.transition(orderID, constants.OrderStatusSellerApproved, actor, "seller accepted", map[string]interface{}{
		"seller_approved_at": now,
	}, func(order *models.Order) error {
		return requireSeller(order, actor)
	})
}

// WorkComplete records that the seller finished the work.
func (s *OrderService) WorkComplete(orderID uint, actor Actor) (*models.Order, error) {
	now := time.Now()
	return s.transition(orderID, constants.OrderStatusWorkCompleted, actor, "work completed", map[string]interface{}{
		"work_completed_at": now,
	}, func(order *models.Order) error {
		return requireSeller(order, actor)
	})
}

// MarkReadyForDelivery queues the order for pickup.
func (s *OrderService) MarkReadyForDelivery(orderID uint, actor Actor) (*models.Order, error) {
	now := time.Now()
	order, err := s.transition(orderID, constants.OrderStatusReadyForDelivery, actor, "ready for delivery", map[string]interface{}{
		"delivery_scheduled_at": now,
	}, func(order *models.Order) error {
		return requireSeller(order, actor)
	})
	if err != nil {
		return nil, err
	}
	s.notifySvc.NotifyAdmins(constants.NotificationKindOrderReady,
		fmt.Sprintf("order %s is ready for delivery assignment", order.OrderNo), orderLink(order.ID))
	return order, nil
}

// PickUp records the assigned pickup person collecting the order. When a
// delivery person is already bound, the order advances to
// out_for_delivery; otherwise it stays ready_for_delivery with
// delivery_picked_up_at set until a delivery person is assigned.
func (s *OrderService) PickUp(orderID, personnelID uint, note string) (*models.Order, error) {
	var result *models.Order
	var advanced bool
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != constants.OrderStatusReadyForDelivery {
			return ErrOrderStatusInvalid
		}
		if order.PickupPersonID == nil || *order.PickupPersonID != personnelID {
			return ErrActorForbidden
		}
		if order.DeliveryPickedUpAt != nil {
			return ErrOrderStatusInvalid
		}

		now := time.Now()
		updates := map[string]interface{}{
			"delivery_picked_up_at": now,
			"updated_at":            now,
		}
		status := order.Status
		if order.DeliveryPersonID != nil {
			status = constants.OrderStatusOutForDelivery
			updates["status"] = status
			advanced = true
		}
		if err := s.orderRepo.WithTx(tx).Updates(order.ID, updates); err != nil {
			return ErrOrderUpdateFailed
		}
		if err := s.personnelRepo.WithTx(tx).IncrementTrips(personnelID); err != nil {
			return err
		}
		actor := Actor{ID: personnelID, Role: constants.ActorRoleDelivery}
		historyNote := cleanRemark(note, "picked up by delivery personnel")
		if err := s.appendHistory(tx, order.ID, status, actor, historyNote); err != nil {
			return err
		}
		order.Status = status
		order.DeliveryPickedUpAt = &now
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifySvc.Notify(constants.ActorRoleBuyer, result.BuyerID, constants.NotificationKindOrderPickedUp,
		fmt.Sprintf("order %s has been picked up", result.OrderNo), orderLink(result.ID))
	if advanced {
		s.notifySvc.Notify(constants.ActorRoleSeller, result.SellerID, constants.NotificationKindOrderPickedUp,
			fmt.Sprintf("order %s is out for delivery", result.OrderNo), orderLink(result.ID))
	}
	return result, nil
}

// Deliver records the assigned delivery person handing the order over.
func (s *OrderService) Deliver(orderID, personnelID uint) (*models.Order, error) {
	var result *models.Order
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != constants.OrderStatusOutForDelivery {
			return ErrOrderStatusInvalid
		}
		if order.DeliveryPersonID == nil || *order.DeliveryPersonID != personnelID {
			return ErrActorForbidden
		}
		now := time.Now()
		if err := s.orderRepo.WithTx(tx).Updates(order.ID, map[string]interface{}{
			"status":       constants.OrderStatusDelivered,
			"delivered_at": now,
			"updated_at":   now,
		}); err != nil {
			return ErrOrderUpdateFailed
		}
		if err := s.personnelRepo.WithTx(tx).IncrementTrips(personnelID); err != nil {
			return err
		}
		actor := Actor{ID: personnelID, Role: constants.ActorRoleDelivery}
		if err := s.appendHistory(tx, order.ID, constants.OrderStatusDelivered, actor, "delivered to buyer"); err != nil {
			return err
		}
		order.Status = constants.OrderStatusDelivered
		order.DeliveredAt = &now
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifySvc.Notify(constants.ActorRoleBuyer, result.BuyerID, constants.NotificationKindOrderDelivered,
		fmt.Sprintf("order %s has been delivered", result.OrderNo), orderLink(result.ID))
	return result, nil
}

// Complete settles a delivered order: the profit row is recorded and the
// seller wallet is credited the total net of commission. Calling it on
// an already-completed order is a no-op.
func (s *OrderService) Complete(orderID uint, actor Actor) (*models.Order, error) {
	var result *models.Order
	var replay bool
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status == constants.OrderStatusCompleted {
			result = order
			replay = true
			return nil
		}
		if order.Status != constants.OrderStatusDelivered {
			return ErrOrderStatusInvalid
		}

		profit, err := s.profitSvc.RecordInTx(tx, order)
		if err != nil {
			return err
		}

		net := order.TotalPrice.Decimal.Sub(profit.Amount.Decimal).Round(2)
		if net.IsPositive() {
			oid := order.ID
			if _, err := s.walletSvc.CreditInTx(tx, WalletMutationInput{
				OwnerKind: constants.WalletOwnerSeller,
				OwnerID:   order.SellerID,
				Amount:    models.NewMoneyFromDecimal(net),
				TxnType:   constants.WalletTxnTypeOrderEarning,
				Reference: fmt.Sprintf("order:%d:seller_earning", order.ID),
				Remark:    fmt.Sprintf("earning for order %s", order.OrderNo),
				OrderID:   &oid,
			}); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := s.orderRepo.WithTx(tx).Updates(order.ID, map[string]interface{}{
			"status":       constants.OrderStatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		}); err != nil {
			return ErrOrderUpdateFailed
		}
		if err := s.appendHistory(tx, order.ID, constants.OrderStatusCompleted, actor, "order completed"); err != nil {
			return err
		}
		order.Status = constants.OrderStatusCompleted
		order.CompletedAt = &now
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	if replay {
		return result, nil
	}
	s.notifySvc.Notify(constants.ActorRoleSeller, result.SellerID, constants.NotificationKindOrderCompleted,
		fmt.Sprintf("order %s is complete, your wallet has been credited", result.OrderNo), orderLink(result.ID))
	return result, nil
}

// Suspend halts an in-transit order. Only the assigned delivery person
// may suspend, and only from out_for_delivery.
func (s *OrderService) Suspend(orderID, personnelID uint, reason string) (*models.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrOrderReasonRequired
	}
	now := time.Now()
	order, err := s.transition(orderID, constants.OrderStatusSuspended,
		Actor{ID: personnelID, Role: constants.ActorRoleDelivery}, reason,
		map[string]interface{}{
			"suspend_reason": reason,
			"suspended_at":   now,
		}, func(order *models.Order) error {
			if order.DeliveryPersonID == nil || *order.DeliveryPersonID != personnelID {
				return ErrActorForbidden
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	s.notifySvc.NotifyAdmins(constants.NotificationKindOrderSuspended,
		fmt.Sprintf("order %s was suspended: %s", order.OrderNo, reason), orderLink(order.ID))
	return order, nil
}

// Resume re-dispatches a suspended order. The target may be
// out_for_delivery (default) or ready_for_delivery; the latter also
// clears the assignment slots so the order can be claimed again.
func (s *OrderService) Resume(orderID uint, actor Actor, target string) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrActorForbidden
	}
	if target == "" {
		target = constants.OrderStatusOutForDelivery
	}
	if target != constants.OrderStatusOutForDelivery && target != constants.OrderStatusReadyForDelivery {
		return nil, ErrOrderStatusInvalid
	}
	var result *models.Order
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != constants.OrderStatusSuspended {
			return ErrOrderStatusInvalid
		}
		now := time.Now()
		updates := map[string]interface{}{
			"status":         target,
			"suspend_reason": "",
			"suspended_at":   nil,
			"updated_at":     now,
		}
		if target == constants.OrderStatusReadyForDelivery {
			updates["pickup_person_id"] = nil
			updates["delivery_person_id"] = nil
			updates["delivery_picked_up_at"] = nil
			updates["delivery_scheduled_at"] = now
		}
		if err := s.orderRepo.WithTx(tx).Updates(order.ID, updates); err != nil {
			return ErrOrderUpdateFailed
		}
		if err := s.appendHistory(tx, order.ID, target, actor, "re-dispatched by admin"); err != nil {
			return err
		}
		order.Status = target
		order.SuspendReason = ""
		order.SuspendedAt = nil
		if target == constants.OrderStatusReadyForDelivery {
			order.PickupPersonID = nil
			order.DeliveryPersonID = nil
			order.DeliveryPickedUpAt = nil
			order.DeliveryScheduledAt = &now
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reject declines an order. Legal from any non-terminal state; a paid
// order is refunded to the buyer wallet.
func (s *OrderService) Reject(orderID uint, actor Actor, reason string) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrActorForbidden
	}
	order, err := s.close(orderID, actor, constants.OrderStatusRejected, reason)
	if err != nil {
		return nil, err
	}
	s.notifySvc.Notify(constants.ActorRoleBuyer, order.BuyerID, constants.NotificationKindOrderRejected,
		fmt.Sprintf("order %s was rejected: %s", order.OrderNo, reason), orderLink(order.ID))
	s.notifySvc.Notify(constants.ActorRoleSeller, order.SellerID, constants.NotificationKindOrderRejected,
		fmt.Sprintf("order %s was rejected", order.OrderNo), orderLink(order.ID))
	return order, nil
}

// Cancel withdraws an order. Buyers and sellers may cancel their own
// orders; admins may cancel any. Legal from any non-terminal state; a
// paid order is refunded to the buyer wallet.
func (s *OrderService) Cancel(orderID uint, actor Actor, reason string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !actor.IsAdmin() {
		ownBuyer := actor.Role == constants.ActorRoleBuyer && actor.ID == order.BuyerID
		ownSeller := actor.Role == constants.ActorRoleSeller && actor.ID == order.SellerID
		if !ownBuyer && !ownSeller {
			return nil, ErrActorForbidden
		}
	}
	closed, err := s.close(orderID, actor, constants.OrderStatusCancelled, reason)
	if err != nil {
		return nil, err
	}
	if actor.Role != constants.ActorRoleSeller {
		s.notifySvc.Notify(constants.ActorRoleSeller, closed.SellerID, constants.NotificationKindOrderCancelled,
			fmt.Sprintf("order %s was cancelled", closed.OrderNo), orderLink(closed.ID))
	}
	if actor.Role != constants.ActorRoleBuyer {
		s.notifySvc.Notify(constants.ActorRoleBuyer, closed.BuyerID, constants.NotificationKindOrderCancelled,
			fmt.Sprintf("order %s was cancelled", closed.OrderNo), orderLink(closed.ID))
	}
	return closed, nil
}

// close rejects or cancels an order, refunding the buyer when payment
// was captured.
func (s *OrderService) close(orderID uint, actor Actor, target, reason string) (*models.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrOrderReasonRequired
	}
	var result *models.Order
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if orderTerminalStatuses[order.Status] {
			return ErrOrderStatusInvalid
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":     target,
			"updated_at": now,
		}
		switch target {
		case constants.OrderStatusRejected:
			updates["rejection_reason"] = reason
			updates["rejected_at"] = now
		case constants.OrderStatusCancelled:
			updates["cancel_reason"] = reason
			updates["cancelled_at"] = now
		default:
			return ErrOrderStatusInvalid
		}

		if order.PaymentStatus == constants.PaymentStatusPaid {
			refund := order.TotalPrice
			if order.DepositAmount != nil {
				refund = *order.DepositAmount
			}
			if refund.Decimal.IsPositive() {
				oid := order.ID
				if _, err := s.walletSvc.CreditInTx(tx, WalletMutationInput{
					OwnerKind: constants.WalletOwnerBuyer,
					OwnerID:   order.BuyerID,
					Amount:    refund,
					TxnType:   constants.WalletTxnTypeOrderRefund,
					Reference: fmt.Sprintf("order:%d:buyer_refund", order.ID),
					Remark:    fmt.Sprintf("refund for order %s", order.OrderNo),
					OrderID:   &oid,
				}); err != nil {
					return err
				}
			}
			updates["payment_status"] = constants.PaymentStatusRefunded
			order.PaymentStatus = constants.PaymentStatusRefunded
		}

		if err := s.orderRepo.WithTx(tx).Updates(order.ID, updates); err != nil {
			return ErrOrderUpdateFailed
		}
		if err := s.appendHistory(tx, order.ID, target, actor, reason); err != nil {
			return err
		}
		order.Status = target
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdvanceAfterDeliveryAssignment moves an already-picked-up order to
// out_for_delivery once its delivery person is known. Called by the
// assignment manager to finish the two-phase hand-off.
func (s *OrderService) AdvanceAfterDeliveryAssignment(orderID, personnelID uint) (*models.Order, error) {
	var result *models.Order
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != constants.OrderStatusReadyForDelivery || order.DeliveryPickedUpAt == nil {
			result = order
			return nil
		}
		now := time.Now()
		if err := s.orderRepo.WithTx(tx).Updates(order.ID, map[string]interface{}{
			"status":     constants.OrderStatusOutForDelivery,
			"updated_at": now,
		}); err != nil {
			return ErrOrderUpdateFailed
		}
		actor := Actor{ID: personnelID, Role: constants.ActorRoleDelivery}
		if err := s.appendHistory(tx, order.ID, constants.OrderStatusOutForDelivery, actor, "delivery person assigned after pickup"); err != nil {
			return err
		}
		order.Status = constants.OrderStatusOutForDelivery
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get fetches an order.
func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List queries orders.
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// History returns the order's audit trail.
func (s *OrderService) History(orderID uint) ([]models.OrderHistory, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.historyRepo.ListByOrder(orderID)
}

// transition performs a forward single-predecessor transition.
func (s *OrderService) transition(orderID uint, target string, actor Actor, note string, updates map[string]interface{}, guard func(*models.Order) error) (*models.Order, error) {
	required, ok := orderForwardTransitions[target]
	if !ok {
		return nil, ErrOrderStatusInvalid
	}
	var result *models.Order
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != required {
			return ErrOrderStatusInvalid
		}
		if guard != nil {
			if err := guard(order); err != nil {
				return err
			}
		}
		if updates == nil {
			updates = map[string]interface{}{}
		}
		updates["status"] = target
		updates["updated_at"] = time.Now()
		if err := s.orderRepo.WithTx(tx).Updates(order.ID, updates); err != nil {
			return ErrOrderUpdateFailed
		}
		if err := s.appendHistory(tx, order.ID, target, actor, note); err != nil {
			return err
		}
		order.Status = target
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *OrderService) lockOrder(tx *gorm.DB, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.WithTx(tx).GetByIDForUpdate(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) appendHistory(tx *gorm.DB, orderID uint, status string, actor Actor, note string) error {
	entry := &models.OrderHistory{
		OrderID:   orderID,
		Status:    status,
		ActorID:   actor.historyActorID(),
		ActorRole: actor.historyRole(),
		Note:      note,
		CreatedAt: time.Now(),
	}
	return s.historyRepo.WithTx(tx).Create(entry)
}

func requireSeller(order *models.Order, actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role != constants.ActorRoleSeller || actor.ID != order.SellerID {
		return ErrActorForbidden
	}
	return nil
}

func orderLink(orderID uint) string {
	return fmt.Sprintf("/orders/%d", orderID)
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SQ%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := crand.Int(crand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
