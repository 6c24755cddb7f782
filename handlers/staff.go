package handlers

import (
	"errors"
	"net/http"
	"strconv"

	carRepo "carrent/database/repository/car"
	contractRepo "carrent/database/repository/contract"
	"carrent/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StaffHandler exposes the manual milestones staff drive: completing a
// rental at return, verifying a signed contract, and fleet administration.
type StaffHandler struct {
	Booking   booking.BookingService
	Contracts contractRepo.Repository
	Cars      carRepo.Repository
	Logger    *zap.Logger
}

func NewStaffHandler(bookingSvc booking.BookingService, contracts contractRepo.Repository, cars carRepo.Repository, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{Booking: bookingSvc, Contracts: contracts, Cars: cars, Logger: logger}
}

// CompleteRental handles POST /api/staff/rentals/:id/complete.
func (h *StaffHandler) CompleteRental(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rental id"})
		return
	}

	if err := h.Booking.CompleteRental(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rental completed"})
}

// VerifyContract handles POST /api/staff/contracts/:id/verify.
func (h *StaffHandler) VerifyContract(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	applied, err := h.Contracts.MarkVerified(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contract not found"})
			return
		}
		respondError(c, err)
		return
	}
	if !applied {
		c.JSON(http.StatusOK, gin.H{"message": "contract already verified"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contract verified"})
}

// ListCars handles GET /api/staff/cars.
func (h *StaffHandler) ListCars(c *gin.Context) {
	cars, err := h.Cars.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

// SetCarAvailability handles PUT /api/staff/cars/:id/availability — the
// manual override for taking a car out of (or back into) service.
func (h *StaffHandler) SetCarAvailability(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}

	var input struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Cars.SetAvailable(c.Request.Context(), uint(id), *input.Available); err != nil {
		respondError(c, err)
		return
	}
	h.Logger.Info("car availability overridden",
		zap.Uint64("carID", id), zap.Bool("available", *input.Available))
	c.JSON(http.StatusOK, gin.H{"message": "car availability updated"})
}
