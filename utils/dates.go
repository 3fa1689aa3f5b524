package utils

import "time"

// The school operates in Lima; Peru does not observe DST, so the fixed
// offset fallback is safe on hosts without tzdata.
var lima *time.Location

func init() {
	loc, err := time.LoadLocation("America/Lima")
	if err != nil {
		loc = time.FixedZone("PET", -5*60*60)
	}
	lima = loc
}

func Location() *time.Location {
	return lima
}

// DateOf reduces an instant to its Lima calendar date, represented as a UTC
// midnight marker so date columns compare cleanly across drivers.
func DateOf(t time.Time) time.Time {
	y, m, d := t.In(lima).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return DateOf(time.Now())
}

func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// At builds the instant for a wall-clock hour on the given date marker.
func At(date time.Time, hour, min int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, lima)
}
