package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"impulso/config"
	"impulso/internal/domain"
	"impulso/internal/middleware"
	"impulso/internal/models"
	"impulso/internal/repository"
	"impulso/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoostHandler struct {
	cfg         *config.Config
	boostSvc    *service.BoostService
	listingRepo *repository.ListingRepository
	slotRepo    *repository.SlotRepository
	paymentRepo *repository.PaymentRepository
}

func NewBoostHandler(cfg *config.Config, boostSvc *service.BoostService, listingRepo *repository.ListingRepository, slotRepo *repository.SlotRepository, paymentRepo *repository.PaymentRepository) *BoostHandler {
	return &BoostHandler{cfg: cfg, boostSvc: boostSvc, listingRepo: listingRepo, slotRepo: slotRepo, paymentRepo: paymentRepo}
}

type boostRequest struct {
	ListingID    uint   `json:"listing_id" binding:"required"`
	SlotIDs      []uint `json:"slot_ids"`
	DurationDays *int   `json:"duration_days"` // nil = engine default
	OpenEnded    bool   `json:"open_ended"`    // true = no expiry, overrides duration_days
	PlanID       int    `json:"plan_id"`
}

// resolveWindow turns the request's duration into a concrete window starting
// now. Callers must say explicitly when they want no expiry; an omitted
// duration means the configured default, never open-ended.
func (h *BoostHandler) resolveWindow(req *boostRequest, now time.Time) service.Window {
	start := now
	if req.OpenEnded {
		return service.Window{Start: &start}
	}
	days := h.cfg.Boost.DefaultDurationDays
	if req.DurationDays != nil && *req.DurationDays > 0 {
		days = *req.DurationDays
	}
	end := now.Add(time.Duration(days) * 24 * time.Hour)
	return service.Window{Start: &start, End: &end}
}

// validateSlots checks that every requested slot exists, is active, and
// belongs to the listing's vertical.
func (h *BoostHandler) validateSlots(listing *models.Listing, slotIDs []uint) ([]models.Slot, bool) {
	if len(slotIDs) == 0 {
		return nil, true
	}
	slots, err := h.slotRepo.GetActiveByIDs(slotIDs)
	if err != nil || len(slots) != len(dedup(slotIDs)) {
		return nil, false
	}
	for _, s := range slots {
		if s.VerticalID != listing.VerticalID {
			return nil, false
		}
	}
	return slots, true
}

func dedup(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	var out []uint
	for _, id := range ids {
		if id != 0 && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Create boosts the caller's own listing immediately: free plans, admin-side
// grants, and flows where payment already cleared elsewhere.
func (h *BoostHandler) Create(c *gin.Context) {
	var req boostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	listing, err := h.listingRepo.GetByID(req.ListingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	if listing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}
	if _, ok := h.validateSlots(listing, req.SlotIDs); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot selection"})
		return
	}

	now := time.Now()
	window := h.resolveWindow(&req, now)
	boost, err := h.boostSvc.EnsureBoost(listing.ID, service.EnsureBoostParams{
		CompanyID: listing.CompanyID,
		UserID:    &userID,
		StartsAt:  window.Start,
		EndsAt:    window.End,
		Status:    domain.BoostStatusActive,
		Metadata: service.BoostMetadata{
			PlanID:       req.PlanID,
			SlotIDs:      dedup(req.SlotIDs),
			DurationDays: req.DurationDays,
			Source:       "api",
		},
	})
	if err != nil {
		log.Printf("create boost listing=%d: %v", listing.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create boost"})
		return
	}

	sync, err := h.boostSvc.SyncSlots(listing.ID, boost.ID, req.SlotIDs, window)
	if err != nil {
		h.renderSyncError(c, listing.ID, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"boost": boost, "sync": sync})
}

// UpdateSlots edits the desired slot set of a listing's active boost. An
// empty set unfeatures the listing everywhere.
func (h *BoostHandler) UpdateSlots(c *gin.Context) {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || listingID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}
	var req boostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ListingID = uint(listingID)

	userID := middleware.GetUserID(c)
	listing, err := h.listingRepo.GetByID(req.ListingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	if listing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}
	if _, ok := h.validateSlots(listing, req.SlotIDs); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot selection"})
		return
	}

	now := time.Now()
	window := h.resolveWindow(&req, now)
	boost, err := h.boostSvc.EnsureBoost(listing.ID, service.EnsureBoostParams{
		CompanyID: listing.CompanyID,
		UserID:    &userID,
		StartsAt:  window.Start,
		EndsAt:    window.End,
		Status:    domain.BoostStatusActive,
		Metadata: service.BoostMetadata{
			PlanID:       req.PlanID,
			SlotIDs:      dedup(req.SlotIDs),
			DurationDays: req.DurationDays,
			Source:       "api",
		},
	})
	if err != nil {
		log.Printf("ensure boost listing=%d: %v", listing.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update boost"})
		return
	}

	sync, err := h.boostSvc.SyncSlots(listing.ID, boost.ID, req.SlotIDs, window)
	if err != nil {
		h.renderSyncError(c, listing.ID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boost": boost, "sync": sync})
}

// Purchase opens a paid boost: the slots are not attached yet, a PENDING
// payment carries the selection and the webhook attaches them once the
// provider confirms.
func (h *BoostHandler) Purchase(c *gin.Context) {
	var req boostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.SlotIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot_ids required"})
		return
	}
	userID := middleware.GetUserID(c)
	listing, err := h.listingRepo.GetByID(req.ListingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	if listing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}
	slots, ok := h.validateSlots(listing, req.SlotIDs)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot selection"})
		return
	}

	// Prices are summed into a single charge, so every selected slot must be
	// priced in the same currency.
	var amount int64
	currency := ""
	for _, s := range slots {
		if s.PriceCents != nil {
			amount += *s.PriceCents
		}
		if s.Currency == "" {
			continue
		}
		if currency != "" && currency != s.Currency {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slots are priced in different currencies"})
			return
		}
		currency = s.Currency
	}
	if currency == "" {
		currency = "CLP"
	}

	meta := service.BoostMetadata{
		ListingID:    listing.ID,
		PlanID:       req.PlanID,
		SlotIDs:      dedup(req.SlotIDs),
		DurationDays: req.DurationDays,
		Source:       "webhook",
	}
	expires := time.Now().Add(h.cfg.Payment.PaymentExpiry)
	payment := &models.Payment{
		UserID:         userID,
		AmountCents:    amount,
		Currency:       currency,
		Provider:       "external",
		ProviderRef:    uuid.NewString(),
		Status:         domain.PaymentStatusPending,
		IdempotencyKey: uuid.NewString(),
		Metadata:       service.EncodeBoostMetadata(meta),
		ExpiresAt:      &expires,
	}
	if err := h.paymentRepo.Create(payment); err != nil {
		log.Printf("create boost payment listing=%d: %v", listing.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create payment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

func (h *BoostHandler) renderSyncError(c *gin.Context, listingID uint, err error) {
	var partial *service.PartialSyncError
	if errors.As(err, &partial) {
		log.Printf("sync slots listing=%d: %v", listingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":       "slot sync failed, retry the request",
			"deactivated": partial.Deactivated,
			"failed_adds": partial.FailedAdds,
		})
		return
	}
	log.Printf("sync slots listing=%d: %v", listingID, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "slot sync failed"})
}
