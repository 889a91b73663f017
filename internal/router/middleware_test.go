package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPersonnelMiddlewareTest(t *testing.T) (*gorm.DB, repository.DeliveryPersonnelRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:router_middleware_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.DeliveryPersonnel{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db, repository.NewDeliveryPersonnelRepository(db)
}

func TestPersonnelLastSeenMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, personnelRepo := setupPersonnelMiddlewareTest(t)

	rider := &models.DeliveryPersonnel{
		Name:        "seen rider",
		Phone:       "+201234567890",
		Status:      constants.PersonnelStatusActive,
		IsAvailable: true,
	}
	if err := db.Create(rider).Error; err != nil {
		t.Fatalf("create personnel failed: %v", err)
	}

	r := gin.New()
	r.GET("/delivery/ping",
		func(c *gin.Context) {
			c.Set(shared.ContextKeyActorID, rider.ID)
			c.Set(shared.ContextKeyActorRole, constants.ActorRoleDelivery)
		},
		PersonnelLastSeenMiddleware(personnelRepo),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

	before := time.Now()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/delivery/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}

	var reloaded models.DeliveryPersonnel
	if err := db.First(&reloaded, rider.ID).Error; err != nil {
		t.Fatalf("reload personnel failed: %v", err)
	}
	if reloaded.LastSeenAt == nil {
		t.Fatalf("expected last_seen_at set after delivery call")
	}
	if reloaded.LastSeenAt.Before(before.Add(-time.Second)) {
		t.Fatalf("expected recent last_seen_at, got %v", reloaded.LastSeenAt)
	}
}

func TestPersonnelLastSeenMiddlewareSkipsMissingActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, personnelRepo := setupPersonnelMiddlewareTest(t)

	r := gin.New()
	r.GET("/delivery/ping",
		PersonnelLastSeenMiddleware(personnelRepo),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/delivery/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected touch-less request to pass, got %d", w.Code)
	}
}
