package appointmentRepo

import (
	"context"
	"errors"

	"patitas/models"
)

// ErrAlreadyClaimed is returned by Claim when the (date, time) key already
// holds a slot document.
var ErrAlreadyClaimed = errors.New("appointment slot already claimed")

// AppointmentRepository defines access to the shared slot store. Claim is the
// authority on slot ownership: it must be an atomic create-if-absent, never a
// read-then-write.
type AppointmentRepository interface {
	// Get returns the slot stored under (date, time), or nil when the key is free.
	Get(ctx context.Context, date string, timeOfDay models.TimeOfDay) (*models.AppointmentSlot, error)
	// Claim stores the slot iff its (date, time) key is free, otherwise
	// returns ErrAlreadyClaimed.
	Claim(ctx context.Context, slot models.AppointmentSlot) error
	// TakenTimes returns the times already claimed on the given date.
	TakenTimes(ctx context.Context, date string) ([]models.TimeOfDay, error)
}
