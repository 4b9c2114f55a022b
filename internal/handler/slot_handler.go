package handler

import (
	"net/http"
	"strconv"

	"impulso/config"
	"impulso/internal/middleware"
	"impulso/internal/models"
	"impulso/internal/repository"
	"impulso/internal/service"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	cfg         *config.Config
	slotRepo    *repository.SlotRepository
	listingRepo *repository.ListingRepository
	boostSvc    *service.BoostService
	verticals   *repository.VerticalRepository
}

func NewSlotHandler(cfg *config.Config, slotRepo *repository.SlotRepository, listingRepo *repository.ListingRepository, verticals *repository.VerticalRepository, boostSvc *service.BoostService) *SlotHandler {
	return &SlotHandler{cfg: cfg, slotRepo: slotRepo, listingRepo: listingRepo, verticals: verticals, boostSvc: boostSvc}
}

// List returns the active slot catalog of a vertical, highest price first.
// Used by admin/config screens, not by the hot read path.
func (h *SlotHandler) List(c *gin.Context) {
	vertical := c.Query("vertical")
	if vertical == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vertical required"})
		return
	}
	slots, err := h.slotRepo.ListActiveByVertical(vertical)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load slots"})
		return
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

type slotOption struct {
	Slot         models.Slot            `json:"slot"`
	Availability service.CooldownResult `json:"availability"`
}

// Options returns the catalog of the listing's vertical annotated with
// per-slot availability, for the boost-selection UI.
func (h *SlotHandler) Options(c *gin.Context) {
	listingID, err := strconv.ParseUint(c.Query("listing_id"), 10, 64)
	if err != nil || listingID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing_id required"})
		return
	}
	listing, err := h.listingRepo.GetByID(uint(listingID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	if listing.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}
	vertical, err := h.verticals.GetByID(listing.VerticalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load vertical"})
		return
	}
	slots, err := h.slotRepo.ListActiveByVertical(vertical.Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load slots"})
		return
	}

	options := make([]slotOption, 0, len(slots))
	for _, s := range slots {
		avail, err := h.boostSvc.CheckCooldown(listing.ID, s.ID, h.cfg.Boost.CooldownHours)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check availability"})
			return
		}
		options = append(options, slotOption{Slot: s, Availability: avail})
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}
