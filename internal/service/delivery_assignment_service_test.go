package service

import (
	"errors"
	"testing"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"
)

func setupAssignmentServiceTest(t *testing.T) (*DeliveryAssignmentService, *orderServiceTestEnv) {
	t.Helper()

	env := setupOrderServiceTest(t)
	svc := NewDeliveryAssignmentService(env.orderRepo, env.personnelRepo, env.orderSvc, env.notifySvc)
	return svc, env
}

// createReadyAssignmentOrder opens an order and walks it to
// ready_for_delivery so it can be claimed.
func createReadyAssignmentOrder(t *testing.T, env *orderServiceTestEnv) *models.Order {
	t.Helper()
	order, _, seller := createOrderTestFixture(t, env, "500", "10")
	advanceOrderToReady(t, env, order.ID, seller.ID)
	return order
}

func TestAssignPickupSingleWinner(t *testing.T) {
	svc, env := setupAssignmentServiceTest(t)
	order := createReadyAssignmentOrder(t, env)
	first := createOrderTestPersonnel(t, env.db, "first rider")
	second := createOrderTestPersonnel(t, env.db, "second rider")

	assigned, err := svc.Assign(AssignInput{
		OrderID:     order.ID,
		PersonnelID: first.ID,
		Role:        constants.AssignmentRolePickup,
	})
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if assigned.PickupPersonID == nil || *assigned.PickupPersonID != first.ID {
		t.Fatalf("expected pickup slot bound to %d, got %+v", first.ID, assigned.PickupPersonID)
	}

	if _, err := svc.Assign(AssignInput{
		OrderID:     order.ID,
		PersonnelID: second.ID,
		Role:        constants.AssignmentRolePickup,
	}); !errors.Is(err, ErrOrderAlreadyAssigned) {
		t.Fatalf("expected already assigned for losing claim, got %v", err)
	}

	// The losing rider can still take the delivery slot.
	assigned, err = svc.Assign(AssignInput{
		OrderID:     order.ID,
		PersonnelID: second.ID,
		Role:        constants.AssignmentRoleDelivery,
	})
	if err != nil {
		t.Fatalf("delivery claim failed: %v", err)
	}
	if assigned.DeliveryPersonID == nil || *assigned.DeliveryPersonID != second.ID {
		t.Fatalf("expected delivery slot bound to %d, got %+v", second.ID, assigned.DeliveryPersonID)
	}
}

func TestAssignRejectsWrongStateOrder(t *testing.T) {
	svc, env := setupAssignmentServiceTest(t)
	order, _, _ := createOrderTestFixture(t, env, "500", "10")
	rider := createOrderTestPersonnel(t, env.db, "eager rider")

	if _, err := svc.Assign(AssignInput{
		OrderID:     order.ID,
		PersonnelID: rider.ID,
		Role:        constants.AssignmentRolePickup,
	}); !errors.Is(err, ErrOrderNotReady) {
		t.Fatalf("expected not ready for pending order, got %v", err)
	}
}

func TestAssignRejectsInactivePersonnel(t *testing.T) {
	svc, env := setupAssignmentServiceTest(t)
	order := createReadyAssignmentOrder(t, env)

	rider := createOrderTestPersonnel(t, env.db, "benched rider")
	if err := env.db.Model(&models.DeliveryPersonnel{}).
		Where("id = ?", rider.ID).
		Update("status", constants.PersonnelStatusInactive).Error; err != nil {
		t.Fatalf("bench rider failed: %v", err)
	}

	if _, err := svc.Assign(AssignInput{
		OrderID:     order.ID,
		PersonnelID: rider.ID,
		Role:        constants.AssignmentRolePickup,
	}); !errors.Is(err, ErrPersonnelInactive) {
		t.Fatalf("expected personnel inactive, got %v", err)
	}

	if _, err := svc.Assign(AssignInput{
		OrderID:     order.ID,
		PersonnelID: 9999,
		Role:        constants.AssignmentRolePickup,
	}); !errors.Is(err, ErrPersonnelNotFound) {
		t.Fatalf("expected personnel not found, got %v", err)
	}
}

func TestAssignDeliveryAfterPickupAdvancesOrder(t *testing.T) {
	svc, env := setupAssignmentServiceTest(t)
	order := createReadyAssignmentOrder(t, env)
	pickup := createOrderTestPersonnel(t, env.db, "pickup rider")
	courier := createOrderTestPersonnel(t, env.db, "late courier")

	if _, err := svc.Assign(AssignInput{
		OrderID:     order.ID,
		PersonnelID: pickup.ID,
		Role:        constants.AssignmentRolePickup,
	}); err != nil {
		t.Fatalf("pickup claim failed: %v", err)
	}
	if _, err := env.orderSvc.PickUp(order.ID, pickup.ID, ""); err != nil {
		t.Fatalf("pick up failed: %v", err)
	}

	assigned, err := svc.Assign(AssignInput{
		OrderID:     order.ID,
		PersonnelID: courier.ID,
		Role:        constants.AssignmentRoleDelivery,
	})
	if err != nil {
		t.Fatalf("delivery claim failed: %v", err)
	}
	if assigned.Status != constants.OrderStatusOutForDelivery {
		t.Fatalf("expected out_for_delivery once courier joins picked-up order, got %s", assigned.Status)
	}
}

func TestBulkAssignReportsPerOrderOutcomes(t *testing.T) {
	svc, env := setupAssignmentServiceTest(t)
	ready := createReadyAssignmentOrder(t, env)
	pending, _, _ := createOrderTestFixture(t, env, "500", "10")
	courier := createOrderTestPersonnel(t, env.db, "bulk courier")

	results := svc.BulkAssign([]uint{ready.ID, pending.ID, 9999}, courier.ID, constants.AssignmentRoleDelivery)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].OK || results[0].OrderID != ready.ID {
		t.Fatalf("expected first order assigned, got %+v", results[0])
	}
	if results[1].OK || results[1].Error == "" {
		t.Fatalf("expected failure for pending order, got %+v", results[1])
	}
	if results[2].OK {
		t.Fatalf("expected failure for missing order, got %+v", results[2])
	}
}

func TestAvailableOrdersTracksDeliverySlot(t *testing.T) {
	svc, env := setupAssignmentServiceTest(t)
	first := createReadyAssignmentOrder(t, env)
	second := createReadyAssignmentOrder(t, env)
	rider := createOrderTestPersonnel(t, env.db, "scanner rider")

	orders, total, err := svc.AvailableOrders(0, 1, 20)
	if err != nil {
		t.Fatalf("list available failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 available orders, got total=%d len=%d", total, len(orders))
	}

	// A taken pickup slot does not hide the order: it still needs a
	// courier.
	if _, err := svc.Assign(AssignInput{
		OrderID:     first.ID,
		PersonnelID: rider.ID,
		Role:        constants.AssignmentRolePickup,
	}); err != nil {
		t.Fatalf("pickup claim failed: %v", err)
	}
	orders, total, err = svc.AvailableOrders(0, 1, 20)
	if err != nil {
		t.Fatalf("list available failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected both orders still listed after pickup claim, got total=%d len=%d", total, len(orders))
	}

	// Binding the courier removes it.
	if _, err := svc.Assign(AssignInput{
		OrderID:     first.ID,
		PersonnelID: rider.ID,
		Role:        constants.AssignmentRoleDelivery,
	}); err != nil {
		t.Fatalf("delivery claim failed: %v", err)
	}
	orders, total, err = svc.AvailableOrders(0, 1, 20)
	if err != nil {
		t.Fatalf("list available failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].ID != second.ID {
		t.Fatalf("expected only order %d left, got total=%d %+v", second.ID, total, orders)
	}
}

func TestToggleAvailability(t *testing.T) {
	svc, env := setupAssignmentServiceTest(t)
	rider := createOrderTestPersonnel(t, env.db, "toggle rider")

	toggled, err := svc.ToggleAvailability(rider.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.IsAvailable {
		t.Fatalf("expected rider unavailable after toggle")
	}

	toggled, err = svc.ToggleAvailability(rider.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if !toggled.IsAvailable {
		t.Fatalf("expected rider available after second toggle")
	}

	if _, err := svc.ToggleAvailability(9999); !errors.Is(err, ErrPersonnelNotFound) {
		t.Fatalf("expected personnel not found, got %v", err)
	}
}

func TestCreateAndManagePersonnel(t *testing.T) {
	svc, _ := setupAssignmentServiceTest(t)

	rider, err := svc.CreatePersonnel("  Ahmed  ", " +201111111111 ")
	if err != nil {
		t.Fatalf("create personnel failed: %v", err)
	}
	if rider.Name != "Ahmed" || rider.Phone != "+201111111111" {
		t.Fatalf("expected trimmed fields, got %q / %q", rider.Name, rider.Phone)
	}
	if rider.Status != constants.PersonnelStatusActive || !rider.IsAvailable {
		t.Fatalf("expected active and available, got %s / %v", rider.Status, rider.IsAvailable)
	}

	if _, err := svc.CreatePersonnel("Other", "+201111111111"); !errors.Is(err, ErrPersonnelPhoneTaken) {
		t.Fatalf("expected phone taken, got %v", err)
	}
	if _, err := svc.CreatePersonnel("", "+202222222222"); !errors.Is(err, ErrPersonnelDetailsRequired) {
		t.Fatalf("expected details required, got %v", err)
	}

	updated, err := svc.SetPersonnelStatus(rider.ID, constants.PersonnelStatusSuspended)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if updated.Status != constants.PersonnelStatusSuspended {
		t.Fatalf("expected suspended, got %s", updated.Status)
	}

	if _, err := svc.SetPersonnelStatus(rider.ID, "retired"); !errors.Is(err, ErrPersonnelStatusInvalid) {
		t.Fatalf("expected status invalid, got %v", err)
	}
}
