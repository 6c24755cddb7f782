package booking

import (
	"errors"
	"fmt"
)

// ErrorCode identifies one of the engine's failure kinds. The set is closed
// so the API layer can map every engine failure to a stable status code.
type ErrorCode string

const (
	CodeInvalidWindow           ErrorCode = "INVALID_WINDOW"
	CodeCarNotFound             ErrorCode = "CAR_NOT_FOUND"
	CodeCarUnavailable          ErrorCode = "CAR_UNAVAILABLE"
	CodeDocumentsMissing        ErrorCode = "DOCUMENTS_MISSING"
	CodeDocumentsNotVerified    ErrorCode = "DOCUMENTS_NOT_VERIFIED"
	CodeUserNotFound            ErrorCode = "USER_NOT_FOUND"
	CodeRentalNotFound          ErrorCode = "RENTAL_NOT_FOUND"
	CodeContractNotFound        ErrorCode = "CONTRACT_NOT_FOUND"
	CodeRentalCancelledUnsigned ErrorCode = "RENTAL_CANCELLED_NOT_SIGNED"
	CodeRentalCancelledUnpaid   ErrorCode = "RENTAL_CANCELLED_NOT_PAID"
	CodeInvalidToken            ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired            ErrorCode = "TOKEN_EXPIRED"
	CodeIllegalTransition       ErrorCode = "ILLEGAL_TRANSITION"
	CodeSessionMismatch         ErrorCode = "SESSION_MISMATCH"
	CodeContractGeneration      ErrorCode = "CONTRACT_GENERATION_FAILED"
	CodeGateway                 ErrorCode = "GATEWAY_ERROR"
)

// Error is a coded engine error.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, msg string) error {
	return &Error{Code: code, Message: msg}
}

// CodeOf extracts the engine error code, or "" for uncoded errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
