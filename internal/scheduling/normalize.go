package scheduling

import (
	"time"

	"github.com/shift-planner/backend/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// IntervalInput is the wire form of a candidate interval: a calendar date,
// wall-clock times and the IANA zone they should be read in.
type IntervalInput struct {
	OwnerID   int64
	Date      string
	StartTime string
	EndTime   string
	Timezone  string
}

// Normalize converts an IntervalInput into absolute UTC instants. Both times
// are interpreted on the given date in the given zone; if the resulting end
// is not after the start the window is taken to span midnight and the end
// moves to the following day. A window that still has zero duration after
// that rule is rejected.
//
// Normalize is pure: it reads no clock and touches no store.
func Normalize(input IntervalInput) (domain.Interval, error) {
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		return domain.Interval{}, newError(KindInvalidIntervalInput, "invalid date %q, expected YYYY-MM-DD", input.Date)
	}

	loc, err := time.LoadLocation(input.Timezone)
	if err != nil || input.Timezone == "" {
		return domain.Interval{}, newError(KindInvalidIntervalInput, "unrecognized timezone %q", input.Timezone)
	}

	startClock, err := time.Parse(timeLayout, input.StartTime)
	if err != nil {
		return domain.Interval{}, newError(KindInvalidIntervalInput, "invalid start time %q, expected HH:mm", input.StartTime)
	}
	endClock, err := time.Parse(timeLayout, input.EndTime)
	if err != nil {
		return domain.Interval{}, newError(KindInvalidIntervalInput, "invalid end time %q, expected HH:mm", input.EndTime)
	}

	date, _ := time.Parse(dateLayout, input.Date)

	start := time.Date(date.Year(), date.Month(), date.Day(), startClock.Hour(), startClock.Minute(), 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), endClock.Hour(), endClock.Minute(), 0, 0, loc)

	// identical start and end is a zero-length window, not an overnight one
	if end.Equal(start) {
		return domain.Interval{}, newError(KindInvalidIntervalInput, "interval has no duration")
	}

	// overnight wraparound: an end before the start belongs to the next
	// calendar day
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}

	return domain.Interval{
		OwnerID:  input.OwnerID,
		Date:     input.Date,
		Start:    start.UTC(),
		End:      end.UTC(),
		Timezone: input.Timezone,
	}, nil
}
