package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"patitas/models"
	"patitas/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeSendReminder is the asynq task type for appointment reminders.
const TypeSendReminder = "appointment:reminder"

// reminderHour is the hour of the previous day at which reminders fire.
const reminderHour = 9

// NewReminderTask builds the asynq task carrying a reminder payload.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	return asynq.NewTask(TypeSendReminder, data), nil
}

// AsynqReminderScheduler enqueues appointment reminders on the shared queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// ScheduleReminder enqueues a reminder for 09:00 the day before the
// appointment. Slots booked after that moment get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload) error {
	day, err := time.ParseInLocation(models.DateLayout, payload.Date, time.Local)
	if err != nil {
		return fmt.Errorf("failed to parse appointment date: %w", err)
	}

	fireAt := day.AddDate(0, 0, -1).Add(reminderHour * time.Hour)
	if fireAt.Before(time.Now()) {
		utils.GetLogger().Debug("skipping reminder inside lead window",
			zap.String("userID", payload.UserID),
			zap.String("date", payload.Date))
		return nil
	}

	task, err := NewReminderTask(payload)
	if err != nil {
		return err
	}
	info, err := s.Client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}

	utils.GetLogger().Info("reminder scheduled",
		zap.String("taskID", info.ID),
		zap.String("userID", payload.UserID),
		zap.Time("fireAt", fireAt))
	return nil
}
