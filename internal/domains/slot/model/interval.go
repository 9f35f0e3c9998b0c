package model

import (
	"fmt"

	"turfbook/shared/constant"
	"turfbook/shared/failure"
)

// TimeInterval is a half-open [start, end) range in minutes since midnight.
// End wraps past midnight, so the last interval of a day may have End < Start.
type TimeInterval struct {
	StartMinute int `db:"start_minute" json:"start_minute"`
	EndMinute   int `db:"end_minute"   json:"end_minute"`
}

func NewTimeInterval(startMinute, durationMinutes int) TimeInterval {
	return TimeInterval{
		StartMinute: startMinute,
		EndMinute:   (startMinute + durationMinutes) % constant.MinutesPerDay,
	}
}

// Start renders the start as HH:MM.
func (t TimeInterval) Start() string {
	return clock(t.StartMinute)
}

// End renders the end as HH:MM.
func (t TimeInterval) End() string {
	return clock(t.EndMinute)
}

func (t TimeInterval) String() string {
	return t.Start() + "-" + t.End()
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// Partition tiles a day into contiguous intervals of durationMinutes starting at openingMinute.
// It stops once an interval ends back at the opening time. Durations that do not
// divide the day stop after the interval that first reaches or passes it.
func Partition(openingMinute, durationMinutes int) ([]TimeInterval, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive, got %d", failure.InvalidConfiguration, durationMinutes)
	}

	if openingMinute < 0 || openingMinute >= constant.MinutesPerDay {
		return nil, fmt.Errorf("%w: opening time out of range, got minute %d", failure.InvalidConfiguration, openingMinute)
	}

	limit := maxIntervals(durationMinutes)
	intervals := make([]TimeInterval, 0, limit)
	cursor := openingMinute

	for range limit {
		interval := NewTimeInterval(cursor, durationMinutes)
		intervals = append(intervals, interval)

		if interval.EndMinute == openingMinute {
			break
		}

		cursor = interval.EndMinute
	}

	return intervals, nil
}

// maxIntervals is the number of intervals needed to cover a whole day.
func maxIntervals(durationMinutes int) int {
	return (constant.MinutesPerDay + durationMinutes - 1) / durationMinutes
}
