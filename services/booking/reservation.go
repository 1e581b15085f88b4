package booking

import (
	"context"
	"errors"
	"time"

	appointmentRepo "patitas/database/repository/appointment"
	recordsRepo "patitas/database/repository/records"
	"patitas/models"
	"patitas/utils"

	"go.uber.org/zap"
)

// storeTimeout bounds every call against the remote store; on expiry the
// reservation is treated as not completed.
const storeTimeout = 5 * time.Second

// DefaultReservationService is the production ReservationService.
type DefaultReservationService struct {
	Repo      appointmentRepo.AppointmentRepository
	Records   recordsRepo.RecordRepository
	Reminders ReminderScheduler // optional
	Clock     Clock
}

func (s *DefaultReservationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return SystemClock.Now()
}

// ReserveSlot checks preconditions, claims the slot and appends the booking
// to the user's history. The pre-read of the slot exists only so the common
// "already taken" case fails before a write is attempted; correctness under
// concurrent callers rests on the conditional insert in Claim.
func (s *DefaultReservationService) ReserveSlot(ctx context.Context, userID, date string, timeOfDay models.TimeOfDay, appointmentType models.AppointmentType) (*models.AppointmentSlot, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if !timeOfDay.Valid() || !appointmentType.Valid() {
		return nil, ErrInvalidSelection
	}
	if !IsDateAvailable(s.now(), date) {
		return nil, ErrInvalidSelection
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	existing, err := s.Repo.Get(ctx, date, timeOfDay)
	if err != nil {
		utils.GetLogger().Error("ReserveSlot: slot pre-check failed", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	slot := models.AppointmentSlot{
		Date:            date,
		Time:            timeOfDay,
		UserID:          userID,
		AppointmentType: appointmentType,
	}
	if err := s.Repo.Claim(ctx, slot); err != nil {
		if errors.Is(err, appointmentRepo.ErrAlreadyClaimed) {
			return nil, ErrSlotTaken
		}
		utils.GetLogger().Error("ReserveSlot: claim failed", zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	record := models.AppointmentRecord{
		UserID:          userID,
		Date:            date,
		Time:            timeOfDay,
		AppointmentType: appointmentType,
	}
	if _, err := s.Records.Append(ctx, record); err != nil {
		// The slot is claimed at this point; losing the history entry must
		// not be reported as a failed booking.
		utils.GetLogger().Error("ReserveSlot: history append failed",
			zap.String("userId", userID), zap.String("date", date), zap.Error(err))
	}

	if s.Reminders != nil {
		payload := models.ReminderPayload{
			UserID:          userID,
			Date:            date,
			Time:            timeOfDay,
			AppointmentType: appointmentType,
		}
		if err := s.Reminders.ScheduleReminder(ctx, payload); err != nil {
			utils.GetLogger().Warn("ReserveSlot: reminder enqueue failed", zap.Error(err))
		}
	}

	return &slot, nil
}

// Availability returns the current weekday window and, per date, the times
// already claimed on it.
func (s *DefaultReservationService) Availability(ctx context.Context) ([]models.DayAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	dates := AvailableDates(s.now())
	days := make([]models.DayAvailability, 0, len(dates))
	for _, date := range dates {
		taken, err := s.Repo.TakenTimes(ctx, date)
		if err != nil {
			utils.GetLogger().Error("Availability: occupancy read failed",
				zap.String("date", date), zap.Error(err))
			return nil, ErrStoreUnavailable
		}
		days = append(days, models.DayAvailability{Date: date, UnavailableTimes: taken})
	}
	return days, nil
}
