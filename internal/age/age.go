// Package age computes display ages for stored timestamps.
package age

import "time"

// AgeData computes the display age of since and whether timing data exists.
// Timestamps in the future report a zero age.
func AgeData(since time.Time, now time.Time) (time.Duration, bool) {
	if since.IsZero() {
		return 0, false
	}
	age := now.Sub(since)
	if age < 0 {
		age = 0
	}
	return age, true
}
