package domain

import "time"

// Shift is a work interval assigned by an administrator. A shift always
// nests inside one of the owner's availability windows on the same date and
// never overlaps another of the owner's shifts. Shifts are not edited in
// place; a correction is a delete followed by a create.
type Shift struct {
	Interval
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
