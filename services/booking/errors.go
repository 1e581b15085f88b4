package booking

import "fmt"

// Error is a typed booking outcome. The handler layer maps codes onto HTTP
// statuses; nothing here is ever raised as a panic.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches by code so wrapped errors still compare with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	// ErrInvalidSelection reports a precondition violation: a time outside
	// the fixed set, an unknown visit reason, or a date outside the window.
	ErrInvalidSelection = &Error{Code: "invalidSelection", Message: "selected date, time or type is not bookable"}
	// ErrSlotTaken reports that another user holds the slot; the caller
	// should prompt for a different time.
	ErrSlotTaken = &Error{Code: "slotTaken", Message: "that slot is already reserved"}
	// ErrStoreUnavailable reports a transient backend failure; the session
	// selection is preserved so the user can retry.
	ErrStoreUnavailable = &Error{Code: "storeUnavailable", Message: "appointment store is unavailable"}
	// ErrUnauthenticated reports a missing user identity; the caller must
	// redirect to sign-in.
	ErrUnauthenticated = &Error{Code: "unauthenticated", Message: "no authenticated user"}
	// ErrSessionNotFound reports an unknown or expired booking session.
	ErrSessionNotFound = &Error{Code: "sessionNotFound", Message: "booking session not found or expired"}
	// ErrConfirmInFlight rejects a duplicate confirm while a reservation is
	// still resolving.
	ErrConfirmInFlight = &Error{Code: "confirmInFlight", Message: "a reservation for this session is already in flight"}
)
