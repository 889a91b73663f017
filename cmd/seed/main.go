package main

import (
	"github.com/souqline/internal/config"
	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/logger"
	"github.com/souqline/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin("admin", "admin123456"); err != nil {
		stdLog.Printf("failed to bootstrap admin: %v", err)
	}

	cities := []models.City{
		{Name: "Cairo", DeliveryFee: money("50"), PlatformCommissionPercent: money("10")},
		{Name: "Giza", DeliveryFee: money("60"), PlatformCommissionPercent: money("10")},
		{Name: "Alexandria", DeliveryFee: money("80"), PlatformCommissionPercent: money("12.5")},
		{Name: "Mansoura", DeliveryFee: money("90"), PlatformCommissionPercent: money("15")},
	}
	for _, city := range cities {
		var existing models.City
		if err := models.DB.Where("name = ?", city.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&city).Error; err != nil {
				stdLog.Printf("failed to create city %s: %v", city.Name, err)
			} else {
				stdLog.Printf("created city: %s", city.Name)
			}
		} else {
			stdLog.Printf("city already exists: %s", city.Name)
		}
	}

	var cairo models.City
	if err := models.DB.Where("name = ?", "Cairo").First(&cairo).Error; err != nil {
		stdLog.Fatalf("failed to load seeded city: %v", err)
	}

	buyers := []models.User{
		{Email: "buyer1@example.com", DisplayName: "First Buyer", WalletBalance: money("500")},
		{Email: "buyer2@example.com", DisplayName: "Second Buyer", WalletBalance: money("0")},
	}
	for _, buyer := range buyers {
		var existing models.User
		if err := models.DB.Where("email = ?", buyer.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&buyer).Error; err != nil {
				stdLog.Printf("failed to create buyer %s: %v", buyer.Email, err)
			} else {
				stdLog.Printf("created buyer: %s", buyer.Email)
			}
		}
	}

	sellers := []models.Seller{
		{Email: "seller1@example.com", ShopName: "Cairo Crafts", CityID: cairo.ID, WalletBalance: money("150")},
		{Email: "seller2@example.com", ShopName: "Nile Woodwork", CityID: cairo.ID, WalletBalance: money("0")},
	}
	for _, seller := range sellers {
		var existing models.Seller
		if err := models.DB.Where("email = ?", seller.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&seller).Error; err != nil {
				stdLog.Printf("failed to create seller %s: %v", seller.Email, err)
			} else {
				stdLog.Printf("created seller: %s", seller.Email)
			}
		}
	}

	personnel := []models.DeliveryPersonnel{
		{Name: "Ahmed Courier", Phone: "+201000000001", Status: constants.PersonnelStatusActive, IsAvailable: true},
		{Name: "Mona Courier", Phone: "+201000000002", Status: constants.PersonnelStatusActive, IsAvailable: true},
		{Name: "Idle Courier", Phone: "+201000000003", Status: constants.PersonnelStatusInactive, IsAvailable: false},
	}
	for _, person := range personnel {
		var existing models.DeliveryPersonnel
		if err := models.DB.Where("phone = ?", person.Phone).First(&existing).Error; err != nil {
			if err := models.DB.Create(&person).Error; err != nil {
				stdLog.Printf("failed to create personnel %s: %v", person.Name, err)
			} else {
				stdLog.Printf("created personnel: %s", person.Name)
			}
		}
	}

	stdLog.Printf("seed finished")
}

func money(s string) models.Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return models.NewMoneyFromDecimal(d)
}
