package service

import (
	"time"

	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProfitService calculates and records the platform's cut of completed
// orders. One profit row exists per order at most; recording again for
// the same order returns the existing row.
type ProfitService struct {
	profitRepo repository.PlatformProfitRepository
	cityRepo   repository.CityRepository
}

// NewProfitService creates a profit service.
func NewProfitService(
	profitRepo repository.PlatformProfitRepository,
	cityRepo repository.CityRepository,
) *ProfitService {
	return &ProfitService{
		profitRepo: profitRepo,
		cityRepo:   cityRepo,
	}
}

// Calculate returns the commission for an order total at the city's rate,
// rounded to 2 decimal places.
func (s *ProfitService) Calculate(total models.Money, commissionPercent models.Money) models.Money {
	amount := total.Decimal.
		Mul(commissionPercent.Decimal).
		Div(decimal.NewFromInt(100)).
		Round(2)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(amount)
}

// RecordInTx stores the profit row for an order inside the caller's
// transaction and returns it. Idempotent per order.
func (s *ProfitService) RecordInTx(tx *gorm.DB, order *models.Order) (*models.PlatformProfit, error) {
	if tx == nil {
		return nil, ErrOrderUpdateFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	profitRepo := s.profitRepo.WithTx(tx)

	existing, err := profitRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	city, err := s.cityRepo.WithTx(tx).GetByID(order.CityID)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}

	profit := &models.PlatformProfit{
		OrderID:   order.ID,
		CityID:    order.CityID,
		SellerID:  order.SellerID,
		Amount:    s.Calculate(order.TotalPrice, city.PlatformCommissionPercent),
		CreatedAt: time.Now(),
	}
	if err := profitRepo.Create(profit); err != nil {
		return nil, err
	}
	return profit, nil
}

// List queries profit entries.
func (s *ProfitService) List(filter repository.ProfitListFilter) ([]models.PlatformProfit, int64, error) {
	return s.profitRepo.List(filter)
}

// Total sums profit entries matching the filter.
func (s *ProfitService) Total(filter repository.ProfitListFilter) (models.Money, error) {
	return s.profitRepo.SumAmount(filter)
}
