package model

import (
	"time"

	slotModel "turfbook/internal/domains/slot/model"
	"turfbook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldUserID         = "user_id"
	FieldTurfID         = "turf_id"
	FieldSlotID         = "slot_id"
	FieldAmount         = "amount"
	FieldDiscount       = "discount"
	FieldTransactionRef = "transaction_ref"
	FieldBookedAt       = "booked_at"
)

// Booking is the confirmed claim of one user on one slot.
// Slot date and interval are read through a join and never written here.
type Booking struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	TurfID         string    `db:"turf_id"`
	SlotID         string    `db:"slot_id"`
	Amount         int       `db:"amount"`
	Discount       int       `db:"discount"`
	TransactionRef string    `db:"transaction_ref"`
	BookedAt       time.Time `db:"booked_at"`
	SlotDate       time.Time `db:"slot_date" table:"slots"`
	StartMinute    int       `db:"start_minute" table:"slots"`
	EndMinute      int       `db:"end_minute" table:"slots"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN " + slotModel.TableName + " ON " + slotModel.TableName + "." + slotModel.FieldID + " = " + TableName + "." + FieldSlotID
}

func (b Booking) Interval() slotModel.TimeInterval {
	return slotModel.TimeInterval{StartMinute: b.StartMinute, EndMinute: b.EndMinute}
}
