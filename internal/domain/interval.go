package domain

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End) anchored to a calendar
// date. Start and End are absolute instants normalized to UTC; Timezone is
// the IANA zone the owner entered and is kept for display only, comparisons
// always happen on the normalized instants.
type Interval struct {
	ID       int64     `json:"id"`
	OwnerID  int64     `json:"ownerID"`
	Date     string    `json:"date"` // YYYY-MM-DD
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Timezone string    `json:"timezone"`
}

// Overlaps reports whether the two intervals share any instant. Touching
// endpoints do not count: [08:00, 16:00) and [16:00, 20:00) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether other lies fully inside i, boundaries included,
// so a shift may start exactly when its availability window starts or end
// exactly when it ends.
func (i Interval) Contains(other Interval) bool {
	return !i.Start.After(other.Start) && !other.End.After(i.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Span renders the interval's range for error messages, in the owner's zone
// when it can be resolved.
func (i Interval) Span() string {
	start, end := i.Start, i.End
	if loc, err := time.LoadLocation(i.Timezone); err == nil && i.Timezone != "" {
		start = start.In(loc)
		end = end.In(loc)
	}
	return fmt.Sprintf("%s - %s", start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
}
