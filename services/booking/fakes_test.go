package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	appointmentRepo "patitas/database/repository/appointment"
	"patitas/models"
)

// fixedClock pins the availability window for deterministic tests.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// memAppointmentRepo is a mutex-guarded in-memory AppointmentRepository whose
// Claim is atomic, mirroring the unique-index behavior of the mongo
// implementation.
type memAppointmentRepo struct {
	mu        sync.Mutex
	slots     map[string]models.AppointmentSlot
	getCalls  int
	failReads bool
	failClaim bool
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{slots: make(map[string]models.AppointmentSlot)}
}

func slotKey(date string, t models.TimeOfDay) string {
	return date + "/" + string(t)
}

func (r *memAppointmentRepo) Get(_ context.Context, date string, t models.TimeOfDay) (*models.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	if r.failReads {
		return nil, errors.New("store down")
	}
	if slot, ok := r.slots[slotKey(date, t)]; ok {
		copied := slot
		return &copied, nil
	}
	return nil, nil
}

func (r *memAppointmentRepo) Claim(_ context.Context, slot models.AppointmentSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failClaim {
		return errors.New("store down")
	}
	key := slotKey(slot.Date, slot.Time)
	if _, ok := r.slots[key]; ok {
		return appointmentRepo.ErrAlreadyClaimed
	}
	r.slots[key] = slot
	return nil
}

func (r *memAppointmentRepo) TakenTimes(_ context.Context, date string) ([]models.TimeOfDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReads {
		return nil, errors.New("store down")
	}
	var times []models.TimeOfDay
	for _, slot := range r.slots {
		if slot.Date == date {
			times = append(times, slot.Time)
		}
	}
	return times, nil
}

func (r *memAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// memRecordRepo collects appended history entries.
type memRecordRepo struct {
	mu      sync.Mutex
	records []models.AppointmentRecord
}

func (r *memRecordRepo) Append(_ context.Context, record models.AppointmentRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = "rec-" + record.Date + "-" + string(record.Time)
	r.records = append(r.records, record)
	return record.ID, nil
}

func (r *memRecordRepo) GetByUserID(_ context.Context, userID string) ([]models.AppointmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AppointmentRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// memSessionStore is an in-memory SessionStore.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.BookingSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]models.BookingSession)}
}

func (s *memSessionStore) Save(_ context.Context, session models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session
	return nil
}

func (s *memSessionStore) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		copied := session
		return &copied, nil
	}
	return nil, nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// memReminders records scheduled reminder payloads.
type memReminders struct {
	mu       sync.Mutex
	payloads []models.ReminderPayload
}

func (m *memReminders) ScheduleReminder(_ context.Context, payload models.ReminderPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads = append(m.payloads, payload)
	return nil
}
