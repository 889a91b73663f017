package provider

import (
	"github.com/souqline/internal/cache"
	"github.com/souqline/internal/config"
	"github.com/souqline/internal/logger"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/queue"
	"github.com/souqline/internal/repository"
	"github.com/souqline/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo           repository.AdminRepository
	UserRepo            repository.UserRepository
	SellerRepo          repository.SellerRepository
	OrderRepo           repository.OrderRepository
	OrderHistoryRepo    repository.OrderHistoryRepository
	PersonnelRepo       repository.DeliveryPersonnelRepository
	CityRepo            repository.CityRepository
	WalletRepo          repository.WalletRepository
	WithdrawalRepo      repository.WithdrawalRepository
	BuyerWithdrawalRepo repository.BuyerWithdrawalRepository
	ProfitRepo          repository.PlatformProfitRepository
	NotificationRepo    repository.NotificationRepository

	// Services
	AuthService         *service.AuthService
	WalletService       *service.WalletService
	ProfitService       *service.ProfitService
	NotificationService *service.NotificationService
	OrderService        *service.OrderService
	AssignmentService   *service.DeliveryAssignmentService
	WithdrawalService   *service.WithdrawalService
	CityService         *service.CityService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.SellerRepo = repository.NewSellerRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.OrderHistoryRepo = repository.NewOrderHistoryRepository(db)
	c.PersonnelRepo = repository.NewDeliveryPersonnelRepository(db)
	c.CityRepo = repository.NewCityRepository(db)
	c.WalletRepo = repository.NewWalletRepository(db)
	c.WithdrawalRepo = repository.NewWithdrawalRepository(db)
	c.BuyerWithdrawalRepo = repository.NewBuyerWithdrawalRepository(db)
	c.ProfitRepo = repository.NewPlatformProfitRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.WalletService = service.NewWalletService(c.WalletRepo)
	c.ProfitService = service.NewProfitService(c.ProfitRepo, c.CityRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.AdminRepo, c.QueueClient)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.OrderHistoryRepo,
		c.PersonnelRepo,
		c.UserRepo,
		c.SellerRepo,
		c.CityRepo,
		c.WalletService,
		c.ProfitService,
		c.NotificationService,
	)
	c.AssignmentService = service.NewDeliveryAssignmentService(
		c.OrderRepo,
		c.PersonnelRepo,
		c.OrderService,
		c.NotificationService,
	)
	c.WithdrawalService = service.NewWithdrawalService(
		c.WithdrawalRepo,
		c.BuyerWithdrawalRepo,
		c.WalletService,
		c.NotificationService,
		&c.Config.Withdrawal,
	)
	c.CityService = service.NewCityService(c.CityRepo)
}
