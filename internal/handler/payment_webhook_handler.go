package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"impulso/config"
	"impulso/internal/domain"
	"impulso/internal/models"
	"impulso/internal/repository"
	"impulso/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentWebhookHandler is the upstream entry of the boost workflow: the
// payment provider confirms a purchase and the handler materializes the boost
// and attaches its slots. Deliveries are at-least-once, so everything below
// must be safe to replay.
type PaymentWebhookHandler struct {
	cfg         *config.Config
	paymentRepo *repository.PaymentRepository
	boostSvc    *service.BoostService
}

func NewPaymentWebhookHandler(cfg *config.Config, paymentRepo *repository.PaymentRepository, boostSvc *service.BoostService) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{cfg: cfg, paymentRepo: paymentRepo, boostSvc: boostSvc}
}

// Handle expects JSON {"reference": "...", "status": "COMPLETED"} and an
// optional X-Webhook-Signature (HMAC-SHA256 of the raw body).
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if h.cfg.Payment.WebhookSecret != "" {
		if !h.verifySignature(body, c.GetHeader("X-Webhook-Signature")) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	}
	var payload struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if payload.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference required"})
		return
	}

	p, err := h.paymentRepo.GetByProviderRef(payload.Reference)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if p == nil || p.Status == domain.PaymentStatusCompleted {
		// Unknown reference or duplicate delivery: acknowledge and move on.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if payload.Status != domain.PaymentStatusCompleted && payload.Status != "completed" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	now := time.Now()
	meta := service.ParseBoostMetadata(p.Metadata)
	if meta.ListingID == 0 {
		log.Printf("webhook payment %s has no listing in metadata", p.ProviderRef)
		h.completePayment(c, p, now)
		return
	}

	window := service.Window{Start: &now}
	if meta.DurationDays != nil && *meta.DurationDays > 0 {
		end := now.Add(time.Duration(*meta.DurationDays) * 24 * time.Hour)
		window.End = &end
	} else if meta.DurationDays == nil {
		end := now.Add(time.Duration(h.cfg.Boost.DefaultDurationDays) * 24 * time.Hour)
		window.End = &end
	}

	boost, err := h.boostSvc.EnsureBoost(meta.ListingID, service.EnsureBoostParams{
		UserID:   &p.UserID,
		StartsAt: window.Start,
		EndsAt:   window.End,
		Status:   domain.BoostStatusActive,
		Metadata: meta,
	})
	if err != nil {
		// Surface a 500 so the provider redelivers; EnsureBoost is idempotent.
		log.Printf("webhook ensure boost listing=%d: %v", meta.ListingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boost persistence failed"})
		return
	}
	sync, err := h.boostSvc.SyncSlots(meta.ListingID, boost.ID, meta.SlotIDs, window)
	if err != nil {
		log.Printf("webhook sync slots listing=%d: %v", meta.ListingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "slot sync failed"})
		return
	}

	// The payment stays PENDING until the slots are attached. A failure above
	// returns 500 with the payment untouched, so the provider's redelivery
	// runs the whole flow again instead of short-circuiting on COMPLETED.
	now = time.Now()
	p.Status = domain.PaymentStatusCompleted
	p.CompletedAt = &now
	if err := h.paymentRepo.Update(p); err != nil {
		log.Printf("webhook complete payment %s: %v", p.ProviderRef, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "boost_id": boost.ID, "sync": sync})
}

func (h *PaymentWebhookHandler) completePayment(c *gin.Context, p *models.Payment, now time.Time) {
	p.Status = domain.PaymentStatusCompleted
	p.CompletedAt = &now
	if err := h.paymentRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *PaymentWebhookHandler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.cfg.Payment.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
