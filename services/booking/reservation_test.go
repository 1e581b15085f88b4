package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"patitas/models"
)

// wednesday is the reference "today" used across reservation tests;
// 2025-01-01 fell on a Wednesday.
var wednesday = date(2025, time.January, 1)

func newReservationService(repo *memAppointmentRepo, records *memRecordRepo, reminders *memReminders) *DefaultReservationService {
	svc := &DefaultReservationService{
		Repo:    repo,
		Records: records,
		Clock:   fixedClock{wednesday},
	}
	// Assign only a non-nil fake: storing a nil *memReminders in the
	// interface field would defeat the service's Reminders != nil guard.
	if reminders != nil {
		svc.Reminders = reminders
	}
	return svc
}

func TestReserveSlot(t *testing.T) {
	t.Run("success claims slot and appends history", func(t *testing.T) {
		repo := newMemAppointmentRepo()
		records := &memRecordRepo{}
		reminders := &memReminders{}
		svc := newReservationService(repo, records, reminders)

		slot, err := svc.ReserveSlot(context.Background(), "user1", "2025-01-06", models.Time1000, models.TypeControl)
		if err != nil {
			t.Fatalf("ReserveSlot returned %v", err)
		}
		if slot.UserID != "user1" || slot.Date != "2025-01-06" || slot.Time != models.Time1000 {
			t.Errorf("unexpected slot %+v", slot)
		}
		if repo.count() != 1 {
			t.Errorf("store holds %d slots, want 1", repo.count())
		}

		history, _ := records.GetByUserID(context.Background(), "user1")
		if len(history) != 1 {
			t.Fatalf("history length %d, want 1", len(history))
		}
		rec := history[0]
		if rec.Date != "2025-01-06" || rec.Time != models.Time1000 || rec.AppointmentType != models.TypeControl {
			t.Errorf("history entry %+v does not match input", rec)
		}
		if len(reminders.payloads) != 1 {
			t.Errorf("scheduled %d reminders, want 1", len(reminders.payloads))
		}
	})

	t.Run("second claim of the same slot is rejected", func(t *testing.T) {
		repo := newMemAppointmentRepo()
		records := &memRecordRepo{}
		svc := newReservationService(repo, records, nil)
		ctx := context.Background()

		if _, err := svc.ReserveSlot(ctx, "user1", "2025-01-06", models.Time1000, models.TypeControl); err != nil {
			t.Fatalf("first ReserveSlot returned %v", err)
		}
		_, err := svc.ReserveSlot(ctx, "user2", "2025-01-06", models.Time1000, models.TypeVacunas)
		if !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("second ReserveSlot returned %v, want ErrSlotTaken", err)
		}
		if repo.count() != 1 {
			t.Errorf("store holds %d slots, want 1", repo.count())
		}
		if stored := repo.slots[slotKey("2025-01-06", models.Time1000)]; stored.UserID != "user1" {
			t.Errorf("slot belongs to %s, want user1", stored.UserID)
		}
		history, _ := records.GetByUserID(ctx, "user2")
		if len(history) != 0 {
			t.Errorf("loser got %d history entries, want 0", len(history))
		}
	})

	t.Run("precondition violations never touch the store", func(t *testing.T) {
		tests := []struct {
			name    string
			userID  string
			date    string
			time    models.TimeOfDay
			appType models.AppointmentType
			want    *Error
		}{
			{"time outside the fixed set", "user1", "2025-01-06", "12:00", models.TypeControl, ErrInvalidSelection},
			{"unknown appointment type", "user1", "2025-01-06", models.Time1000, "Peluquería", ErrInvalidSelection},
			{"weekend date", "user1", "2025-01-04", models.Time1000, models.TypeControl, ErrInvalidSelection},
			{"past date", "user1", "2024-12-30", models.Time1000, models.TypeControl, ErrInvalidSelection},
			{"date beyond window", "user1", "2025-01-08", models.Time1000, models.TypeControl, ErrInvalidSelection},
			{"missing user", "", "2025-01-06", models.Time1000, models.TypeControl, ErrUnauthenticated},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newMemAppointmentRepo()
				svc := newReservationService(repo, &memRecordRepo{}, nil)

				_, err := svc.ReserveSlot(context.Background(), tt.userID, tt.date, tt.time, tt.appType)
				if !errors.Is(err, tt.want) {
					t.Fatalf("ReserveSlot returned %v, want %v", err, tt.want)
				}
				if repo.count() != 0 {
					t.Errorf("store holds %d slots, want 0", repo.count())
				}
				if repo.getCalls != 0 {
					t.Errorf("store was read %d times, want 0", repo.getCalls)
				}
			})
		}
	})

	t.Run("store failure surfaces as storeUnavailable", func(t *testing.T) {
		repo := newMemAppointmentRepo()
		repo.failReads = true
		svc := newReservationService(repo, &memRecordRepo{}, nil)

		_, err := svc.ReserveSlot(context.Background(), "user1", "2025-01-06", models.Time1000, models.TypeControl)
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("ReserveSlot returned %v, want ErrStoreUnavailable", err)
		}
	})
}

func TestReserveSlotConcurrent(t *testing.T) {
	repo := newMemAppointmentRepo()
	records := &memRecordRepo{}
	svc := newReservationService(repo, records, nil)

	const callers = 16
	results := make([]error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user%d", i)
			_, err := svc.ReserveSlot(context.Background(), userID, "2025-01-06", models.Time1000, models.TypeControl)
			results[i] = err
		}(i)
	}
	wg.Wait()

	var wins, taken int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
			taken++
		default:
			t.Errorf("unexpected error %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("%d callers succeeded, want exactly 1", wins)
	}
	if taken != callers-1 {
		t.Errorf("%d callers saw ErrSlotTaken, want %d", taken, callers-1)
	}
	if repo.count() != 1 {
		t.Errorf("store holds %d slots, want exactly 1", repo.count())
	}
	records.mu.Lock()
	defer records.mu.Unlock()
	if len(records.records) != 1 {
		t.Errorf("history holds %d entries, want exactly 1", len(records.records))
	}
}

func TestAvailability(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc := newReservationService(repo, &memRecordRepo{}, nil)
	ctx := context.Background()

	if _, err := svc.ReserveSlot(ctx, "user1", "2025-01-02", models.Time0930, models.TypeBano); err != nil {
		t.Fatalf("seed ReserveSlot returned %v", err)
	}

	days, err := svc.Availability(ctx)
	if err != nil {
		t.Fatalf("Availability returned %v", err)
	}
	if len(days) != bookableDays {
		t.Fatalf("got %d days, want %d", len(days), bookableDays)
	}
	if days[0].Date != "2025-01-01" {
		t.Errorf("first day %s, want 2025-01-01", days[0].Date)
	}
	for _, day := range days {
		switch day.Date {
		case "2025-01-02":
			if len(day.UnavailableTimes) != 1 || day.UnavailableTimes[0] != models.Time0930 {
				t.Errorf("day %s unavailable times = %v, want [09:30]", day.Date, day.UnavailableTimes)
			}
		default:
			if len(day.UnavailableTimes) != 0 {
				t.Errorf("day %s unavailable times = %v, want none", day.Date, day.UnavailableTimes)
			}
		}
	}
}
