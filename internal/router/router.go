package router

import (
	"fmt"
	"strings"

	"github.com/souqline/internal/cache"
	"github.com/souqline/internal/config"
	"github.com/souqline/internal/constants"
	adminhandlers "github.com/souqline/internal/http/handlers/admin"
	publichandlers "github.com/souqline/internal/http/handlers/public"
	"github.com/souqline/internal/logger"
	"github.com/souqline/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sq"
	}
	redisClient := cache.Client()
	withdrawalRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:withdrawal", redisPrefix),
		WindowSeconds: cfg.Security.WithdrawalRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WithdrawalRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.WithdrawalRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	secret := cfg.JWT.SecretKey
	anyActor := ActorAuthMiddleware(secret)
	buyerAuth := ActorAuthMiddleware(secret, constants.ActorRoleBuyer)
	sellerAuth := ActorAuthMiddleware(secret, constants.ActorRoleSeller)
	deliveryAuth := ActorAuthMiddleware(secret, constants.ActorRoleDelivery)
	adminAuth := ActorAuthMiddleware(secret, constants.ActorRoleAdmin)

	apiV1 := r.Group("/api/v1")
	{
		// Admin login is the only unauthenticated route.
		apiV1.POST("/auth/admin/login", adminHandler.Login)

		// Order reads shared by buyer, seller and delivery.
		orders := apiV1.Group("/orders", anyActor)
		{
			orders.GET("", publicHandler.ListOrders)
			orders.GET("/:id", publicHandler.GetOrder)
			orders.GET("/:id/history", publicHandler.OrderHistory)
			orders.POST("/:id/cancel", publicHandler.CancelOrder)
		}

		buyer := apiV1.Group("", buyerAuth)
		{
			buyer.POST("/orders", publicHandler.CreateOrder)
			buyer.POST("/buyer/withdrawals",
				RateLimitMiddleware(redisClient, withdrawalRule, KeyByActor),
				publicHandler.CreateBuyerWithdrawal)
			buyer.GET("/buyer/withdrawals", publicHandler.ListBuyerWithdrawals)
		}

		seller := apiV1.Group("/seller", sellerAuth)
		{
			seller.POST("/orders/:id/approve", publicHandler.SellerApproveOrder)
			seller.POST("/orders/:id/work-complete", publicHandler.SellerWorkComplete)
			seller.POST("/orders/:id/ready", publicHandler.SellerMarkReady)
		}
		sellerRoot := apiV1.Group("", sellerAuth)
		{
			sellerRoot.POST("/withdrawals",
				RateLimitMiddleware(redisClient, withdrawalRule, KeyByActor),
				publicHandler.CreateWithdrawal)
			sellerRoot.GET("/withdrawals", publicHandler.ListWithdrawals)
		}

		delivery := apiV1.Group("/delivery", deliveryAuth, PersonnelLastSeenMiddleware(c.PersonnelRepo))
		{
			delivery.GET("/orders/available", publicHandler.AvailableOrders)
			delivery.POST("/orders/:id/claim", publicHandler.ClaimOrder)
			delivery.POST("/orders/:id/pickup", publicHandler.PickUpOrder)
			delivery.POST("/orders/:id/deliver", publicHandler.DeliverOrder)
			delivery.POST("/orders/:id/suspend", publicHandler.SuspendOrder)
			delivery.POST("/availability/toggle", publicHandler.ToggleAvailability)
		}

		authed := apiV1.Group("", anyActor)
		{
			authed.GET("/wallet", publicHandler.GetWallet)
			authed.GET("/withdrawals/options", publicHandler.WithdrawalOptions)
			authed.GET("/notifications", publicHandler.ListNotifications)
			authed.GET("/notifications/unread-count", publicHandler.UnreadNotificationCount)
			authed.POST("/notifications/:id/read", publicHandler.MarkNotificationRead)
		}

		admin := apiV1.Group("/admin", adminAuth)
		{
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.POST("/orders/:id/approve", adminHandler.ApproveOrder)
			admin.POST("/orders/:id/reject", adminHandler.RejectOrder)
			admin.POST("/orders/:id/cancel", adminHandler.CancelOrder)
			admin.POST("/orders/:id/complete", adminHandler.CompleteOrder)
			admin.POST("/orders/:id/redispatch", adminHandler.RedispatchOrder)

			admin.POST("/delivery/assign-pickup", adminHandler.AssignPickup)
			admin.POST("/delivery/assign-delivery", adminHandler.AssignDelivery)
			admin.POST("/delivery/bulk-assign", adminHandler.BulkAssign)
			admin.GET("/delivery/personnel", adminHandler.ListPersonnel)
			admin.POST("/delivery/personnel", adminHandler.CreatePersonnel)
			admin.POST("/delivery/personnel/:id/status", adminHandler.SetPersonnelStatus)

			admin.GET("/withdrawals", adminHandler.ListWithdrawals)
			admin.POST("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
			admin.POST("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)
			admin.GET("/buyer-withdrawals", adminHandler.ListBuyerWithdrawals)
			admin.POST("/buyer-withdrawals/:id/approve", adminHandler.ApproveBuyerWithdrawal)
			admin.POST("/buyer-withdrawals/:id/reject", adminHandler.RejectBuyerWithdrawal)

			admin.GET("/profits", adminHandler.ListProfits)

			admin.GET("/cities", adminHandler.ListCities)
			admin.POST("/cities", adminHandler.CreateCity)
			admin.PUT("/cities/:id", adminHandler.UpdateCity)
			admin.DELETE("/cities/:id", adminHandler.DeleteCity)

			admin.POST("/wallet/adjust", adminHandler.AdjustWallet)
			admin.GET("/wallet/transactions", adminHandler.ListWalletTransactions)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
