package models

import "time"

// User is a registered customer account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"fullName" json:"fullName"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	AvatarURL    string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	FirebaseUID  string    `bson:"firebaseUid,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the client-facing view of an account.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// ToPublicUser strips credential fields for responses.
func ToPublicUser(u User) PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

// ReminderPayload is the asynq task body for an appointment reminder.
type ReminderPayload struct {
	UserID          string          `json:"userId"`
	Date            string          `json:"date"`
	Time            TimeOfDay       `json:"time"`
	AppointmentType AppointmentType `json:"appointmentType"`
}
