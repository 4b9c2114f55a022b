package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"impulso/internal/cache"
	"impulso/internal/service"

	"github.com/gin-gonic/gin"
)

// FeaturedHandler serves the hot read path: what is currently live in a slot.
// Strictly read-only.
type FeaturedHandler struct {
	boostSvc *service.BoostService
	cache    *cache.FeaturedCache
}

func NewFeaturedHandler(boostSvc *service.BoostService, featuredCache *cache.FeaturedCache) *FeaturedHandler {
	return &FeaturedHandler{boostSvc: boostSvc, cache: featuredCache}
}

// Get returns the ranked active listings of a slot. An unknown slot or an
// empty slot renders as an empty list, never an error: pages show nothing
// rather than failing.
func (h *FeaturedHandler) Get(c *gin.Context) {
	slotKey := c.Query("slot")
	vertical := c.Query("vertical")
	if slotKey == "" || vertical == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot and vertical required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	userID64, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	companyID64, _ := strconv.ParseUint(c.Query("company_id"), 10, 64)
	opts := service.FetchOptions{
		Limit:       limit,
		ListingType: c.Query("listing_type"),
		UserID:      uint(userID64),
		CompanyID:   uint(companyID64),
	}

	key := h.cache.Key(slotKey, vertical, opts.ListingType, opts.UserID, opts.CompanyID, opts.Limit)
	if payload, ok := h.cache.Get(c.Request.Context(), key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	rows, err := h.boostSvc.FetchBoosted(slotKey, vertical, opts)
	if err != nil {
		log.Printf("fetch boosted slot=%s vertical=%s: %v", slotKey, vertical, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load featured listings"})
		return
	}

	body := gin.H{"items": rows}
	payload, err := json.Marshal(body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not encode response"})
		return
	}
	h.cache.Set(c.Request.Context(), key, payload)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
