package handlers

import (
	"net/http"

	"carrent/services/booking"
	"carrent/utils"

	"github.com/gin-gonic/gin"
)

// statusForCode maps each engine error kind to a stable HTTP status.
func statusForCode(code booking.ErrorCode) int {
	switch code {
	case booking.CodeInvalidWindow:
		return http.StatusBadRequest
	case booking.CodeCarNotFound, booking.CodeRentalNotFound,
		booking.CodeUserNotFound, booking.CodeContractNotFound:
		return http.StatusNotFound
	case booking.CodeCarUnavailable, booking.CodeInvalidToken,
		booking.CodeIllegalTransition, booking.CodeSessionMismatch:
		return http.StatusConflict
	case booking.CodeDocumentsMissing, booking.CodeDocumentsNotVerified:
		return http.StatusPreconditionFailed
	case booking.CodeRentalCancelledUnsigned, booking.CodeRentalCancelledUnpaid,
		booking.CodeTokenExpired:
		return http.StatusGone
	case booking.CodeContractGeneration, booking.CodeGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes an engine error as JSON; uncoded errors become 500s.
func respondError(c *gin.Context, err error) {
	code := booking.CodeOf(err)
	if code == "" {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	utils.JSONError(c, statusForCode(code), string(code), err.Error())
}
