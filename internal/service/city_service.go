package service

import (
	"strings"

	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"

	"github.com/shopspring/decimal"
)

// CityService manages the city table feeding delivery fees and
// commission rates into profit calculation.
type CityService struct {
	cityRepo repository.CityRepository
}

// CityInput describes a city create or update.
type CityInput struct {
	Name                      string
	DeliveryFee               models.Money
	PlatformCommissionPercent models.Money
}

// NewCityService creates a city service.
func NewCityService(cityRepo repository.CityRepository) *CityService {
	return &CityService{cityRepo: cityRepo}
}

func validateCityInput(input *CityInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return ErrCityNotFound
	}
	percent := input.PlatformCommissionPercent.Decimal
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return ErrWalletInvalidAmount
	}
	if input.DeliveryFee.Decimal.IsNegative() {
		return ErrWalletInvalidAmount
	}
	return nil
}

// Create adds a city.
func (s *CityService) Create(input CityInput) (*models.City, error) {
	if err := validateCityInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.cityRepo.GetByName(input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCityNameTaken
	}
	city := &models.City{
		Name:                      input.Name,
		DeliveryFee:               input.DeliveryFee,
		PlatformCommissionPercent: input.PlatformCommissionPercent,
	}
	if err := s.cityRepo.Create(city); err != nil {
		return nil, err
	}
	return city, nil
}

// Update modifies a city.
func (s *CityService) Update(id uint, input CityInput) (*models.City, error) {
	if err := validateCityInput(&input); err != nil {
		return nil, err
	}
	city, err := s.cityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}
	if city.Name != input.Name {
		existing, err := s.cityRepo.GetByName(input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCityNameTaken
		}
	}
	city.Name = input.Name
	city.DeliveryFee = input.DeliveryFee
	city.PlatformCommissionPercent = input.PlatformCommissionPercent
	if err := s.cityRepo.Update(city); err != nil {
		return nil, err
	}
	return city, nil
}

// Get fetches a city.
func (s *CityService) Get(id uint) (*models.City, error) {
	city, err := s.cityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}
	return city, nil
}

// List queries cities.
func (s *CityService) List(page, pageSize int) ([]models.City, int64, error) {
	return s.cityRepo.List(page, pageSize)
}

// Delete removes a city.
func (s *CityService) Delete(id uint) error {
	city, err := s.cityRepo.GetByID(id)
	if err != nil {
		return err
	}
	if city == nil {
		return ErrCityNotFound
	}
	return s.cityRepo.Delete(id)
}
