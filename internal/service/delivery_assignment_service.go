package service

import (
	"fmt"
	"strings"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"
)

// DeliveryAssignmentService binds ready orders to delivery personnel and
// tracks availability. Claims are compare-and-set updates, so two
// concurrent assignments of the same slot produce exactly one winner.
type DeliveryAssignmentService struct {
	orderRepo     repository.OrderRepository
	personnelRepo repository.DeliveryPersonnelRepository
	orderSvc      *OrderService
	notifySvc     *NotificationService
}

// AssignInput names an order, a delivery person, and the slot to fill.
type AssignInput struct {
	OrderID     uint
	PersonnelID uint
	Role        string // pickup / delivery
}

// BulkAssignResult reports the outcome for one order of a bulk assign.
type BulkAssignResult struct {
	OrderID uint   `json:"order_id"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// NewDeliveryAssignmentService creates a delivery assignment service.
func NewDeliveryAssignmentService(
	orderRepo repository.OrderRepository,
	personnelRepo repository.DeliveryPersonnelRepository,
	orderSvc *OrderService,
	notifySvc *NotificationService,
) *DeliveryAssignmentService {
	return &DeliveryAssignmentService{
		orderRepo:     orderRepo,
		personnelRepo: personnelRepo,
		orderSvc:      orderSvc,
		notifySvc:     notifySvc,
	}
}

// AvailableOrders lists ready orders still needing a courier, earliest
// scheduled first.
func (s *DeliveryAssignmentService) AvailableOrders(cityID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListAvailable(cityID, page, pageSize)
}

// Assign binds a delivery person to an order's pickup or delivery slot.
func (s *DeliveryAssignmentService) Assign(input AssignInput) (*models.Order, error) {
	personnel, err := s.personnelRepo.GetByID(input.PersonnelID)
	if err != nil {
		return nil, err
	}
	if personnel == nil {
		return nil, ErrPersonnelNotFound
	}
	if !personnel.IsActive() {
		return nil, ErrPersonnelInactive
	}

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	var affected int64
	switch input.Role {
	case constants.AssignmentRolePickup:
		affected, err = s.orderRepo.ClaimPickup(input.OrderID, input.PersonnelID)
	case constants.AssignmentRoleDelivery:
		affected, err = s.orderRepo.ClaimDelivery(input.OrderID, input.PersonnelID)
	default:
		return nil, ErrOrderStatusInvalid
	}
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Re-read to tell a lost race from a wrong state.
		current, err := s.orderRepo.GetByID(input.OrderID)
		if err != nil {
			return nil, ErrOrderFetchFailed
		}
		if current == nil {
			return nil, ErrOrderNotFound
		}
		if current.Status != constants.OrderStatusReadyForDelivery {
			return nil, ErrOrderNotReady
		}
		return nil, ErrOrderAlreadyAssigned
	}

	updated, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}

	// A delivery person joining an already-picked-up order finishes the
	// two-phase hand-off.
	if input.Role == constants.AssignmentRoleDelivery && updated.DeliveryPickedUpAt != nil {
		updated, err = s.orderSvc.AdvanceAfterDeliveryAssignment(input.OrderID, input.PersonnelID)
		if err != nil {
			return nil, err
		}
	}

	s.notifySvc.Notify(constants.ActorRoleDelivery, input.PersonnelID, constants.NotificationKindOrderAssigned,
		fmt.Sprintf("order %s has been assigned to you for %s", updated.OrderNo, input.Role),
		orderLink(updated.ID))
	return updated, nil
}

// BulkAssign applies Assign to each order independently. Failures do not
// roll back earlier successes; the result reports per-order outcomes.
func (s *DeliveryAssignmentService) BulkAssign(orderIDs []uint, personnelID uint, role string) []BulkAssignResult {
	results := make([]BulkAssignResult, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		_, err := s.Assign(AssignInput{
			OrderID:     orderID,
			PersonnelID: personnelID,
			Role:        role,
		})
		result := BulkAssignResult{OrderID: orderID, OK: err == nil}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// ToggleAvailability flips the personnel's availability flag without
// touching their status.
func (s *DeliveryAssignmentService) ToggleAvailability(personnelID uint) (*models.DeliveryPersonnel, error) {
	personnel, err := s.personnelRepo.GetByID(personnelID)
	if err != nil {
		return nil, err
	}
	if personnel == nil {
		return nil, ErrPersonnelNotFound
	}
	if err := s.personnelRepo.SetAvailability(personnelID, !personnel.IsAvailable); err != nil {
		return nil, err
	}
	personnel.IsAvailable = !personnel.IsAvailable
	return personnel, nil
}

// ListPersonnel queries delivery personnel.
func (s *DeliveryAssignmentService) ListPersonnel(filter repository.PersonnelListFilter) ([]models.DeliveryPersonnel, int64, error) {
	return s.personnelRepo.List(filter)
}

// GetPersonnel fetches one delivery person.
func (s *DeliveryAssignmentService) GetPersonnel(id uint) (*models.DeliveryPersonnel, error) {
	personnel, err := s.personnelRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if personnel == nil {
		return nil, ErrPersonnelNotFound
	}
	return personnel, nil
}

// SetPersonnelStatus changes a delivery person's status. A person taken
// out of active stops receiving assignments but keeps existing ones.
func (s *DeliveryAssignmentService) SetPersonnelStatus(id uint, status string) (*models.DeliveryPersonnel, error) {
	switch status {
	case constants.PersonnelStatusActive, constants.PersonnelStatusInactive, constants.PersonnelStatusSuspended:
	default:
		return nil, ErrPersonnelStatusInvalid
	}
	personnel, err := s.personnelRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if personnel == nil {
		return nil, ErrPersonnelNotFound
	}
	personnel.Status = status
	if err := s.personnelRepo.Update(personnel); err != nil {
		return nil, err
	}
	return personnel, nil
}

// CreatePersonnel registers a delivery person.
func (s *DeliveryAssignmentService) CreatePersonnel(name, phone string) (*models.DeliveryPersonnel, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, ErrPersonnelDetailsRequired
	}
	existing, err := s.personnelRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPersonnelPhoneTaken
	}
	personnel := &models.DeliveryPersonnel{
		Name:        name,
		Phone:       phone,
		Status:      constants.PersonnelStatusActive,
		IsAvailable: true,
	}
	if err := s.personnelRepo.Create(personnel); err != nil {
		return nil, err
	}
	return personnel, nil
}
