package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	carRepo "carrent/database/repository/car"
	contractRepo "carrent/database/repository/contract"
	rentalRepo "carrent/database/repository/rental"
	userRepo "carrent/database/repository/user"
	"carrent/models"
	"carrent/services/contractgen"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	Rentals   rentalRepo.Repository
	Cars      carRepo.Repository
	Users     userRepo.Repository
	Contracts contractRepo.Repository
	Renderer  contractgen.Renderer
	Deadlines Deadlines
	Logger    *zap.Logger
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	now := time.Now()
	if err := ValidateWindow(req.PickupDate, req.ReturnDate, now); err != nil {
		return nil, err
	}
	if !validTimeOfDay(req.PickupTime) || !validTimeOfDay(req.ReturnTime) {
		return nil, NewError(CodeInvalidWindow, "pickup/return time must be HH:MM")
	}
	if req.TotalCost <= 0 {
		return nil, NewError(CodeInvalidWindow, "total cost must be positive")
	}

	usr, err := s.Users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(CodeUserNotFound, "user not found")
		}
		return nil, err
	}
	if !usr.DocumentsUploaded {
		return nil, NewError(CodeDocumentsMissing, "identity documents have not been uploaded")
	}
	if !usr.DocumentsVerified {
		return nil, NewError(CodeDocumentsNotVerified, "identity documents are awaiting staff verification")
	}

	// Fast-fail on an obviously unbookable car. The authoritative check is
	// re-run under a row lock inside CreateBooking.
	car, err := s.Cars.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(CodeCarNotFound, "car not found")
		}
		return nil, err
	}
	if !car.Available {
		return nil, NewError(CodeCarUnavailable, "car is not available")
	}

	rental := &models.Rental{
		CarID:      req.CarID,
		UserID:     req.UserID,
		StartDate:  req.PickupDate,
		EndDate:    req.ReturnDate,
		PickupTime: req.PickupTime,
		ReturnTime: req.ReturnTime,
		TotalCost:  req.TotalCost,
	}
	if err := s.Rentals.CreateBooking(ctx, rental); err != nil {
		switch {
		case errors.Is(err, rentalRepo.ErrCarNotFound):
			return nil, NewError(CodeCarNotFound, "car not found")
		case errors.Is(err, rentalRepo.ErrCarUnavailable):
			return nil, NewError(CodeCarUnavailable, "car already booked for an overlapping window")
		default:
			return nil, err
		}
	}

	// The rental row persists even if contract generation fails: the caller
	// is told, and the auto-cancel sweep reclaims the rental within the
	// signing deadline.
	contractURL, err := s.Renderer.Render(ctx, rental, usr, car)
	if err != nil {
		s.Logger.Error("contract generation failed",
			zap.Uint("rentalID", rental.ID), zap.Error(err))
		return nil, NewError(CodeContractGeneration,
			fmt.Sprintf("booking %d recorded but contract generation failed; please retry", rental.ID))
	}

	contract := &models.RentalContract{
		RentalID:    rental.ID,
		ContractURL: contractURL,
		UploadedAt:  time.Now(),
	}
	if err := s.Contracts.Create(ctx, contract); err != nil {
		s.Logger.Error("failed to persist rental contract",
			zap.Uint("rentalID", rental.ID), zap.Error(err))
		return nil, NewError(CodeContractGeneration,
			fmt.Sprintf("booking %d recorded but contract persistence failed; please retry", rental.ID))
	}

	s.Logger.Info("booking created",
		zap.Uint("rentalID", rental.ID),
		zap.Uint("carID", rental.CarID),
		zap.Uint("userID", rental.UserID))

	return &BookingResult{RentalID: rental.ID, ContractURL: contractURL}, nil
}

func (s *DefaultBookingService) GetRental(ctx context.Context, id uint) (*models.Rental, error) {
	rental, err := s.Rentals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(CodeRentalNotFound, "rental not found")
		}
		return nil, err
	}
	return rental, nil
}

func (s *DefaultBookingService) ListUserRentals(ctx context.Context, userID uint) ([]models.Rental, error) {
	return s.Rentals.ListByUser(ctx, userID)
}
