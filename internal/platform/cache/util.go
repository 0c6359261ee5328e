package cache

import (
	"time"
)

// TimeUntilNext8AM returns the duration until the next 8 AM in Toronto,
// shortly before markets open and the daily price ingest runs.
func TimeUntilNext8AM() time.Duration {
	loc, _ := time.LoadLocation("America/Toronto")
	now := time.Now().In(loc)

	next8am := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, loc)

	// If 8 AM has already passed today, use tomorrow's
	if now.After(next8am) {
		next8am = next8am.Add(24 * time.Hour)
	}

	return next8am.Sub(now)
}
