package booking

import (
	"time"
)

// ValidateWindow rejects malformed rental windows before any state is
// touched: the window must be well-formed ([start, end), non-zero length)
// and must not start in the past.
func ValidateWindow(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return NewError(CodeInvalidWindow, "pickup and return dates are required")
	}
	if !start.Before(end) {
		return NewError(CodeInvalidWindow, "return date must be after pickup date")
	}
	if end.Before(now) {
		return NewError(CodeInvalidWindow, "rental window is entirely in the past")
	}
	return nil
}

// validTimeOfDay accepts "" (date-level precision) or an HH:MM string.
func validTimeOfDay(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
