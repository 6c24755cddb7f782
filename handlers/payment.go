package handlers

import (
	"io"
	"net/http"

	"carrent/middleware"
	"carrent/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Service booking.PaymentService
	Logger  *zap.Logger
}

func NewPaymentHandler(svc booking.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: svc, Logger: logger}
}

// InitiateCheckout handles POST /api/payments/checkout.
func (h *PaymentHandler) InitiateCheckout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input struct {
		RentalID uint    `json:"rentalId" binding:"required"`
		Amount   float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.InitiateCheckout(c.Request.Context(), input.RentalID, userID, input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// VerifySession handles POST /api/payments/verify.
func (h *PaymentHandler) VerifySession(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionId" binding:"required"`
		RentalID  uint   `json:"rentalId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	success, err := h.Service.VerifySession(c.Request.Context(), input.SessionID, input.RentalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": success})
}

// Webhook handles the gateway's asynchronous callback. It is
// signature-verified, not session-authenticated.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if err := h.Service.HandleWebhook(c.Request.Context(), payload, sig); err != nil {
		h.Logger.Error("webhook processing failed", zap.Error(err))
		// Non-2xx makes the gateway retry; processing is idempotent.
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook rejected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
