package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"impulso/config"
	"impulso/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	cfg      *config.Config
	boostSvc *service.BoostService
}

func NewAdminHandler(cfg *config.Config, boostSvc *service.BoostService) *AdminHandler {
	return &AdminHandler{cfg: cfg, boostSvc: boostSvc}
}

// Approve flips a pending boost to active and attaches the slots recorded in
// its metadata. Manual-approval counterpart of the payment webhook.
func (h *AdminHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid boost id"})
		return
	}
	boost, err := h.boostSvc.ApproveBoost(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBoostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "boost not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "boost is not pending"})
		default:
			log.Printf("approve boost %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "approve failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"boost": boost})
}

// Cancel revokes a pending or active boost and deactivates its assignments.
func (h *AdminHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid boost id"})
		return
	}
	if err := h.boostSvc.CancelBoost(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrBoostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "boost not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "boost already finished"})
		default:
			log.Printf("cancel boost %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cancel failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// Expire ends boosts whose window has closed. Invoked by an external cron
// with Authorization: Bearer <CRON_SECRET>.
func (h *AdminHandler) Expire(c *gin.Context) {
	if h.cfg.Boost.CronSecret == "" || c.GetHeader("Authorization") != "Bearer "+h.cfg.Boost.CronSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	result, err := h.boostSvc.ExpireDue(time.Now())
	if err != nil {
		log.Printf("expire boosts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("boost expiration completed: expired=%d slots_cleaned=%d", result.ExpiredCount, result.SlotsCleaned)
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"expired_count": result.ExpiredCount,
		"slots_cleaned": result.SlotsCleaned,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
