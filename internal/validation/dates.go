package validation

import (
	"fmt"
	"time"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

// DateLayout is the only date format the platform accepts.
const DateLayout = "2006-01-02"

const MinimumAge = 18

// ParseDate accepts only well formed calendar dates in DateLayout.
func ParseDate(value string) (time.Time, bool) {
	if validate.Var(value, "required,datetime="+DateLayout) != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func Date(value, field string) error {
	if _, ok := ParseDate(value); !ok {
		return sdkerr.InvalidFormat(field, "Y-m-d")
	}
	return nil
}

// DateRange checks that from is not after to and, when maxDays > 0, that the
// span does not exceed maxDays. Both dates must already be well formed.
func DateRange(from, to string, maxDays int) error {
	f, ok := ParseDate(from)
	if !ok {
		return sdkerr.InvalidFormat("date_from", "Y-m-d")
	}
	t, ok := ParseDate(to)
	if !ok {
		return sdkerr.InvalidFormat("date_to", "Y-m-d")
	}
	span := from + " - " + to
	if f.After(t) {
		return sdkerr.InvalidValue("date_range", span, "date_from must be before date_to")
	}
	if maxDays > 0 {
		if days := int(t.Sub(f).Hours() / 24); days > maxDays {
			return sdkerr.InvalidValue("date_range", span, fmt.Sprintf("Date range cannot exceed %d days", maxDays))
		}
	}
	return nil
}

// DateOfBirth requires a well formed date that is not in the future and puts
// the holder at MinimumAge or older on now.
func DateOfBirth(value, field string, now time.Time) error {
	dob, ok := ParseDate(value)
	if !ok {
		return sdkerr.InvalidFormat(field, "Y-m-d")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dob.After(today) {
		return sdkerr.InvalidValue(field, value, "Date cannot be in the future")
	}
	if age := Age(dob, today); age < MinimumAge {
		return sdkerr.Minimum("age", age, MinimumAge)
	}
	return nil
}

// Age returns completed years between dob and on.
func Age(dob, on time.Time) int {
	years := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		years--
	}
	return years
}
