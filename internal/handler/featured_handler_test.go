package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"impulso/internal/cache"
	"impulso/internal/domain"
	"impulso/internal/models"
	"impulso/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vertical{},
		&models.Listing{},
		&models.Slot{},
		&models.Boost{},
		&models.SlotAssignment{},
		&models.Payment{},
	))
	return db
}

func featuredRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	// nil redis client: the cache degrades to plain reads.
	h := NewFeaturedHandler(service.NewBoostService(db), cache.NewFeaturedCache(nil, time.Second))
	r := gin.New()
	r.GET("/featured", h.Get)
	return r
}

func TestFeaturedUnknownSlotRendersEmpty(t *testing.T) {
	db := setupHandlerDB(t)
	r := featuredRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/featured?slot=nonexistent_slot&vertical=autos", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
}

func TestFeaturedReturnsRankedItems(t *testing.T) {
	db := setupHandlerDB(t)
	r := featuredRouter(db)

	v := &models.Vertical{Key: "autos", Title: "Autos", IsActive: true}
	require.NoError(t, db.Create(v).Error)
	slot := &models.Slot{VerticalID: v.ID, Key: "home_main", Title: "Portada", IsActive: true}
	require.NoError(t, db.Create(slot).Error)

	now := time.Now()
	for i := 0; i < 3; i++ {
		l := &models.Listing{VerticalID: v.ID, UserID: uint(10 + i), Title: "car", ListingType: "sale", Status: "published"}
		require.NoError(t, db.Create(l).Error)
		b := &models.Boost{ListingID: l.ID, Status: domain.BoostStatusActive, StartsAt: now}
		require.NoError(t, db.Create(b).Error)
		require.NoError(t, db.Create(&models.SlotAssignment{
			BoostID: b.ID, SlotID: slot.ID, ListingID: l.ID, Priority: i, StartsAt: now, IsActive: true,
		}).Error)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/featured?slot=home_main&vertical=autos&limit=2", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items []struct {
			Priority int `json:"priority"`
			Listing  struct {
				ID uint `json:"id"`
			} `json:"listing"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, 2, body.Items[0].Priority)
	assert.Equal(t, 1, body.Items[1].Priority)
}

func TestFeaturedMissingParams(t *testing.T) {
	db := setupHandlerDB(t)
	r := featuredRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/featured?slot=home_main", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
