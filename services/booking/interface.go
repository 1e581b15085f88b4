package booking

import (
	"context"

	"patitas/models"
)

// ReservationService validates and claims appointment slots against the
// shared store.
type ReservationService interface {
	// ReserveSlot atomically claims (date, time) for the user and appends
	// the booking to their appointment history. Returns ErrSlotTaken when
	// another user holds the slot, ErrInvalidSelection or ErrUnauthenticated
	// on precondition violations (without touching the store), and
	// ErrStoreUnavailable on backend failure.
	ReserveSlot(ctx context.Context, userID, date string, timeOfDay models.TimeOfDay, appointmentType models.AppointmentType) (*models.AppointmentSlot, error)
	// Availability returns the current weekday window together with the
	// times already claimed on each date.
	Availability(ctx context.Context) ([]models.DayAvailability, error)
}

// SessionService drives the booking-session state machine that holds a user's
// in-progress selection between opening a date and confirming or cancelling.
type SessionService interface {
	// Open creates a session for an available date and reports which times
	// on it are already taken.
	Open(ctx context.Context, userID, date string) (*models.BookingSession, error)
	// UpdateSelection records the chosen time and visit reason.
	UpdateSelection(ctx context.Context, userID, sessionID string, timeOfDay models.TimeOfDay, appointmentType models.AppointmentType) (*models.BookingSession, error)
	// Confirm runs the reservation. On success the session is destroyed and
	// the claimed slot returned. On ErrSlotTaken the session drops back to
	// date-selected with its unavailable time list refreshed, and is
	// returned alongside the error for re-selection.
	Confirm(ctx context.Context, userID, sessionID string) (*models.AppointmentSlot, *models.BookingSession, error)
	// Cancel destroys the session.
	Cancel(ctx context.Context, userID, sessionID string) error
}

// SessionStore persists booking sessions between requests. Get returns nil
// for an unknown or expired session.
type SessionStore interface {
	Save(ctx context.Context, session models.BookingSession) error
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// ReminderScheduler enqueues an appointment reminder for later delivery.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload) error
}
