package booking

import (
	"context"
	"errors"
	"time"

	appointmentRepo "patitas/database/repository/appointment"
	"patitas/models"
	"patitas/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionService is the production SessionService. State lives in the
// SessionStore; the service only moves sessions between dateSelected and
// confirming and tears them down on success or cancel.
type DefaultSessionService struct {
	Store        SessionStore
	Reservations ReservationService
	Repo         appointmentRepo.AppointmentRepository
	Clock        Clock
}

func (s *DefaultSessionService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return SystemClock.Now()
}

// Open creates a session for an available date, pre-loading the times already
// claimed on it so the client can grey them out.
func (s *DefaultSessionService) Open(ctx context.Context, userID, date string) (*models.BookingSession, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if !IsDateAvailable(s.now(), date) {
		return nil, ErrInvalidSelection
	}

	taken, err := s.Repo.TakenTimes(ctx, date)
	if err != nil {
		utils.GetLogger().Error("Open: occupancy read failed", zap.String("date", date), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	now := s.now()
	session := models.BookingSession{
		SessionID:        uuid.New().String(),
		UserID:           userID,
		State:            models.SessionDateSelected,
		Date:             date,
		UnavailableTimes: taken,
		CreatedAt:        now,
		LastUpdatedAt:    now,
	}
	if err := s.Store.Save(ctx, session); err != nil {
		utils.GetLogger().Error("Open: session save failed", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return &session, nil
}

// load fetches a session and verifies ownership. Foreign sessions are
// indistinguishable from missing ones.
func (s *DefaultSessionService) load(ctx context.Context, userID, sessionID string) (*models.BookingSession, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		utils.GetLogger().Error("session load failed", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	if session == nil || session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// UpdateSelection records the chosen time and visit reason on an open session.
func (s *DefaultSessionService) UpdateSelection(ctx context.Context, userID, sessionID string, timeOfDay models.TimeOfDay, appointmentType models.AppointmentType) (*models.BookingSession, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == models.SessionConfirming {
		return nil, ErrConfirmInFlight
	}
	if !timeOfDay.Valid() || !appointmentType.Valid() {
		return nil, ErrInvalidSelection
	}

	session.Time = timeOfDay
	session.AppointmentType = appointmentType
	session.LastUpdatedAt = s.now()
	if err := s.Store.Save(ctx, *session); err != nil {
		utils.GetLogger().Error("UpdateSelection: session save failed", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return session, nil
}

// Confirm runs the reservation for the session's selection. The confirming
// state is persisted before the store call so a duplicate submit from the
// same session is rejected while the first is still resolving.
func (s *DefaultSessionService) Confirm(ctx context.Context, userID, sessionID string) (*models.AppointmentSlot, *models.BookingSession, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.State == models.SessionConfirming {
		return nil, nil, ErrConfirmInFlight
	}
	if session.Time == "" || session.AppointmentType == "" {
		return nil, session, ErrInvalidSelection
	}

	session.State = models.SessionConfirming
	session.LastUpdatedAt = s.now()
	if err := s.Store.Save(ctx, *session); err != nil {
		utils.GetLogger().Error("Confirm: session save failed", zap.Error(err))
		return nil, nil, ErrStoreUnavailable
	}

	slot, reserveErr := s.Reservations.ReserveSlot(ctx, userID, session.Date, session.Time, session.AppointmentType)
	if reserveErr == nil {
		if err := s.Store.Delete(ctx, sessionID); err != nil {
			utils.GetLogger().Warn("Confirm: session delete failed", zap.Error(err))
		}
		return slot, nil, nil
	}

	// The reservation did not complete; reopen the session so the user can
	// retry without re-selecting everything.
	session.State = models.SessionDateSelected
	if errors.Is(reserveErr, ErrSlotTaken) {
		// Refresh the occupancy list so the rejected time shows as taken.
		if taken, err := s.Repo.TakenTimes(ctx, session.Date); err == nil {
			session.UnavailableTimes = taken
		}
		session.Time = ""
	}
	session.LastUpdatedAt = s.now()
	if err := s.Store.Save(ctx, *session); err != nil {
		utils.GetLogger().Error("Confirm: session reopen failed", zap.Error(err))
	}
	return nil, session, reserveErr
}

// Cancel destroys the session.
func (s *DefaultSessionService) Cancel(ctx context.Context, userID, sessionID string) error {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, session.SessionID); err != nil {
		utils.GetLogger().Error("Cancel: session delete failed", zap.Error(err))
		return ErrStoreUnavailable
	}
	return nil
}
