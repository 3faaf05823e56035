// Package report computes the technical report and the alert and
// statistics views derived from maintenance data.  Every function here is
// pure: callers load the rows and pass in both the report window and the
// evaluation instant, so results depend on nothing but their arguments.
package report

import (
	"math"
	"time"
)

const (
	msPerMinute = 60 * 1000
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Window is an inclusive [Start, End] range in milliseconds since epoch.
// A window whose End precedes its Start contains nothing.
type Window struct {
	Start int64
	End   int64
}

// Contains reports whether ts lies inside the window, both ends included.
func (w Window) Contains(ts int64) bool {
	return ts >= w.Start && ts <= w.End
}

// Minutes is the window length in minutes.
func (w Window) Minutes() float64 {
	return float64(w.End-w.Start) / msPerMinute
}

// Days returns the window ending at now and spanning the given number of
// days.
func Days(now time.Time, days int) Window {
	end := now.UnixMilli()
	return Window{Start: end - int64(days)*msPerDay, End: end}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// minutesToHours converts a downtime in minutes to whole hours.
func minutesToHours(m int64) int64 {
	return int64(math.Round(float64(m) / 60))
}

func matchesCinema(filter *uint64, cinemaID uint64) bool {
	return filter == nil || *filter == cinemaID
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
