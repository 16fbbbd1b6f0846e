package domain

import (
	"sync"
	"time"
)

// DateLayout is the local calendar date key of schedules and intake records.
const DateLayout = "2006-01-02"

var zones sync.Map // name -> *time.Location

// LoadLocation returns the zone for name, falling back to UTC when the name
// is empty or unknown. Results are cached by name, failures included.
func LoadLocation(name string) *time.Location {
	if v, ok := zones.Load(name); ok {
		return v.(*time.Location)
	}
	loc := time.UTC
	if name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}
	zones.Store(name, loc)
	return loc
}

// Localize converts a UTC instant to the wall clock of tz and returns it
// together with the local date key. Never fails: bad zones mean UTC.
func Localize(utc time.Time, tz string) (time.Time, string) {
	local := utc.In(LoadLocation(tz))
	return local, local.Format(DateLayout)
}

// MinuteOfDay returns minutes since local midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
