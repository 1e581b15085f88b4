package models

import "time"

// DateLayout is the calendar-date format used as part of slot keys.
const DateLayout = "2006-01-02"

// TimeOfDay is one of the clinic's fixed booking times. The set is closed;
// values outside it must never reach storage.
type TimeOfDay string

const (
	Time0930 TimeOfDay = "09:30"
	Time1000 TimeOfDay = "10:00"
	Time1030 TimeOfDay = "10:30"
	Time1100 TimeOfDay = "11:00"
	Time1130 TimeOfDay = "11:30"
	Time1500 TimeOfDay = "15:00"
	Time1530 TimeOfDay = "15:30"
	Time1600 TimeOfDay = "16:00"
	Time1630 TimeOfDay = "16:30"
	Time1700 TimeOfDay = "17:00"
	Time1730 TimeOfDay = "17:30"
)

// TimesOfDay lists every bookable time in display order.
func TimesOfDay() []TimeOfDay {
	return []TimeOfDay{
		Time0930, Time1000, Time1030, Time1100, Time1130,
		Time1500, Time1530, Time1600, Time1630, Time1700, Time1730,
	}
}

// Valid reports whether t belongs to the closed time set.
func (t TimeOfDay) Valid() bool {
	for _, candidate := range TimesOfDay() {
		if t == candidate {
			return true
		}
	}
	return false
}

// AppointmentType is the reason for a visit.
type AppointmentType string

const (
	TypeControl  AppointmentType = "Control"
	TypeBano     AppointmentType = "Baño"
	TypeVacunas  AppointmentType = "Vacunas"
	TypeCirugias AppointmentType = "Cirugías"
	TypeOtros    AppointmentType = "Otros"
)

// AppointmentTypes lists every visit reason in display order.
func AppointmentTypes() []AppointmentType {
	return []AppointmentType{TypeControl, TypeBano, TypeVacunas, TypeCirugias, TypeOtros}
}

// Valid reports whether a belongs to the closed type set.
func (a AppointmentType) Valid() bool {
	for _, candidate := range AppointmentTypes() {
		if a == candidate {
			return true
		}
	}
	return false
}

// AppointmentSlot is the stored claim on a (date, time) pair. At most one
// document may exist per key; the appointment collection enforces this with a
// unique compound index.
type AppointmentSlot struct {
	Date            string          `bson:"date" json:"date"`
	Time            TimeOfDay       `bson:"time" json:"time"`
	UserID          string          `bson:"userId" json:"userId"`
	AppointmentType AppointmentType `bson:"appointmentType" json:"appointmentType"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
}

// AppointmentRecord is one entry in a user's append-only appointment history.
// It is independent of the slot document and only serves the profile view.
type AppointmentRecord struct {
	ID              string          `bson:"id" json:"id"`
	UserID          string          `bson:"userId" json:"userId"`
	Date            string          `bson:"date" json:"date"`
	Time            TimeOfDay       `bson:"time" json:"time"`
	AppointmentType AppointmentType `bson:"appointmentType" json:"appointmentType"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
}

// DayAvailability pairs a bookable date with the times already claimed on it.
type DayAvailability struct {
	Date             string      `json:"date"`
	UnavailableTimes []TimeOfDay `json:"unavailableTimes"`
}
