package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mkInterval(start, end string) Interval {
	s, _ := time.Parse(time.RFC3339, start)
	e, _ := time.Parse(time.RFC3339, end)
	return Interval{Date: "2024-03-04", Start: s, End: e, Timezone: "UTC"}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "partial overlap",
			a:    mkInterval("2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z"),
			b:    mkInterval("2024-03-04T15:00:00Z", "2024-03-04T20:00:00Z"),
			want: true,
		},
		{
			name: "touching endpoints do not overlap",
			a:    mkInterval("2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z"),
			b:    mkInterval("2024-03-04T16:00:00Z", "2024-03-04T20:00:00Z"),
			want: false,
		},
		{
			name: "disjoint",
			a:    mkInterval("2024-03-04T08:00:00Z", "2024-03-04T10:00:00Z"),
			b:    mkInterval("2024-03-04T12:00:00Z", "2024-03-04T14:00:00Z"),
			want: false,
		},
		{
			name: "one inside the other",
			a:    mkInterval("2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z"),
			b:    mkInterval("2024-03-04T09:00:00Z", "2024-03-04T12:00:00Z"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// symmetry must hold for every pair
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	a := mkInterval("2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z")
	assert.True(t, a.Overlaps(a), "an interval conflicts with an identical copy of itself")
}

func TestContains(t *testing.T) {
	window := mkInterval("2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z")

	tests := []struct {
		name string
		b    Interval
		want bool
	}{
		{"strictly inside", mkInterval("2024-03-04T09:00:00Z", "2024-03-04T12:00:00Z"), true},
		{"shared start boundary", mkInterval("2024-03-04T08:00:00Z", "2024-03-04T12:00:00Z"), true},
		{"shared end boundary", mkInterval("2024-03-04T12:00:00Z", "2024-03-04T16:00:00Z"), true},
		{"starts before window", mkInterval("2024-03-04T07:00:00Z", "2024-03-04T12:00:00Z"), false},
		{"ends after window", mkInterval("2024-03-04T12:00:00Z", "2024-03-04T17:00:00Z"), false},
		{"fully outside", mkInterval("2024-03-04T17:00:00Z", "2024-03-04T19:00:00Z"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Contains(tt.b))
		})
	}

	t.Run("reflexive", func(t *testing.T) {
		assert.True(t, window.Contains(window))
	})
}

func TestSpanUsesOwnerTimezone(t *testing.T) {
	i := mkInterval("2024-01-01T22:00:00Z", "2024-01-02T02:00:00Z")
	i.Timezone = "America/New_York"
	assert.Equal(t, "2024-01-01 17:00 - 2024-01-01 21:00", i.Span())
}
