package models

import "time"

// BookingSessionState tracks where an in-progress booking stands. The idle
// state has no representation: it is simply the absence of a session.
type BookingSessionState string

const (
	// SessionDateSelected means the user fixed a date and is choosing a
	// time and visit reason.
	SessionDateSelected BookingSessionState = "dateSelected"
	// SessionConfirming means a reservation is in flight; further confirm
	// calls are rejected until it resolves.
	SessionConfirming BookingSessionState = "confirming"
)

// BookingSession holds a user's in-progress appointment selection between
// opening the day modal and confirming or cancelling. Sessions live in redis
// under a TTL and never touch the primary store.
type BookingSession struct {
	SessionID        string              `json:"sessionId"`
	UserID           string              `json:"userId"`
	State            BookingSessionState `json:"state"`
	Date             string              `json:"date"`
	Time             TimeOfDay           `json:"time,omitempty"`
	AppointmentType  AppointmentType     `json:"appointmentType,omitempty"`
	UnavailableTimes []TimeOfDay         `json:"unavailableTimes"`
	CreatedAt        time.Time           `json:"createdAt"`
	LastUpdatedAt    time.Time           `json:"lastUpdatedAt"`
}
