package recordsRepo

import (
	"context"

	"patitas/models"
)

// RecordRepository stores the append-only per-user appointment history. It is
// independent of the slot collection and only feeds the profile view.
type RecordRepository interface {
	// Append adds one history entry and returns its ID.
	Append(ctx context.Context, record models.AppointmentRecord) (string, error)
	// GetByUserID fetches a user's appointment history, newest first.
	GetByUserID(ctx context.Context, userID string) ([]models.AppointmentRecord, error)
}
