package model

import (
	"time"

	"turfbook/shared/model"
)

const (
	TableName  = "slots"
	EntityName = "slot"

	FieldID          = "id"
	FieldTurfID      = "turf_id"
	FieldSlotDate    = "slot_date"
	FieldStartMinute = "start_minute"
	FieldEndMinute   = "end_minute"
	FieldStatus      = "status"
	FieldBookingID   = "booking_id"
	FieldModifiedAt  = "modified_at"
	FieldModifiedBy  = "modified_by"
)

const (
	StatusVacant = "VACANT"
	StatusBooked = "BOOKED"
)

// Slot is one bookable interval of a turf on a calendar date.
// BookingID stays nil while the slot is VACANT.
type Slot struct {
	ID       string    `db:"id"`
	TurfID   string    `db:"turf_id"`
	SlotDate time.Time `db:"slot_date"`
	TimeInterval
	Status    string  `db:"status"`
	BookingID *string `db:"booking_id"`
	model.Metadata
}

func (s Slot) IsVacant() bool {
	return s.Status == StatusVacant
}

// Day truncates t to a calendar date in UTC, the form slot dates are stored and compared in.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing date.
func WeekStart(date time.Time) time.Time {
	day := Day(date)
	offset := (int(day.Weekday()) + 6) % 7

	return day.AddDate(0, 0, -offset)
}
