package location

import (
	"sync/atomic"
	"time"
)

var current atomic.Pointer[time.Location]

// Init loads the named time zone ("Europe/Moscow", "UTC", ...) and makes it the
// location every page and export renders times in.
func Init(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	current.Store(loc)
	return nil
}

// Location returns the configured location, UTC until Init succeeds.
func Location() *time.Location {
	if loc := current.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// Now is the current time in the configured location.
func Now() time.Time {
	return time.Now().In(Location())
}
