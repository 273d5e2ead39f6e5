package entry

import (
	"time"
)

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseDisplayDate reads a year-less display label back into a date, using
// the year and location of ref. Labels carry no year so an entry from the
// same month and day of an earlier year resolves to ref's year.
func ParseDisplayDate(label string, ref time.Time) (time.Time, error) {
	t, err := time.ParseInLocation(DisplayLayout, label, ref.Location())
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ref.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ref.Location()), nil
}

// EmptyOn reports whether e is an empty entry whose display date is day.
func (e Entry) EmptyOn(day time.Time) bool {
	if !e.Empty() {
		return false
	}
	d, err := ParseDisplayDate(e.Date, day)
	if err != nil {
		return false
	}
	return SameDay(day, d)
}
