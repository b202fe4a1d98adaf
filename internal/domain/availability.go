package domain

import "time"

// Availability is a window an employee declared themselves schedulable in.
// Windows for one owner on one date never overlap and last at least the
// configured minimum duration.
type Availability struct {
	Interval
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
