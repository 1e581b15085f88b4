package booking

import (
	"time"

	"patitas/models"
)

// bookableDays is the size of the rolling weekday window offered to clients.
const bookableDays = 5

// Clock supplies the current time. Injected so the window is testable; the
// zero-config default is the system clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production Clock.
var SystemClock Clock = systemClock{}

// AvailableDates walks forward from today (inclusive) and collects the next
// five weekdays. Weekend days are skipped, not counted, so the result always
// holds exactly five strictly increasing Monday-to-Friday dates.
func AvailableDates(now time.Time) []string {
	dates := make([]string, 0, bookableDays)
	day := now
	for len(dates) < bookableDays {
		wd := day.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			dates = append(dates, day.Format(models.DateLayout))
		}
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// IsDateAvailable reports whether date belongs to the window computed at call
// time. The window is never cached across days: a date bookable at 23:59 may
// stop being bookable a minute later, which is accepted behavior.
func IsDateAvailable(now time.Time, date string) bool {
	for _, d := range AvailableDates(now) {
		if d == date {
			return true
		}
	}
	return false
}
