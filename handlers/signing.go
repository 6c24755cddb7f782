package handlers

import (
	"net/http"

	"carrent/middleware"
	"carrent/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SigningHandler struct {
	Service booking.SigningService
	Logger  *zap.Logger
}

func NewSigningHandler(svc booking.SigningService, logger *zap.Logger) *SigningHandler {
	return &SigningHandler{Service: svc, Logger: logger}
}

// RequestSigning handles POST /api/contracts/sign-request.
func (h *SigningHandler) RequestSigning(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input struct {
		RentalID uint `json:"rentalId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.RequestSigning(c.Request.Context(), userID, input.RentalID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "signing link dispatched"})
}

// SubmitSignature handles POST /api/contracts/sign. The signer identity is
// taken from the authenticated session, not the request body, so link-based
// signing records whoever actually signed.
func (h *SigningHandler) SubmitSignature(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input struct {
		RentalID   uint   `json:"rentalId" binding:"required"`
		ContractID uint   `json:"contractId" binding:"required"`
		Token      string `json:"token" binding:"required"`
		Name       string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	email, _ := c.Get("userEmail")
	signerEmail, _ := email.(string)

	err := h.Service.SubmitSignature(c.Request.Context(), booking.SignatureSubmission{
		UserID:      userID,
		RentalID:    input.RentalID,
		ContractID:  input.ContractID,
		Token:       input.Token,
		SignerName:  input.Name,
		SignerEmail: signerEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contract signed"})
}
