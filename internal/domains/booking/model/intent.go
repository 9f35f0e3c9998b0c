package model

import "time"

const (
	IntentTableName  = "reservation_intents"
	IntentEntityName = "reservation_intent"

	IntentFieldSlotID    = "slot_id"
	IntentFieldUserID    = "user_id"
	IntentFieldCreatedAt = "created_at"
)

// ReservationIntent is the claim a requester must win before writing a booking.
// The store keeps at most one per slot.
type ReservationIntent struct {
	SlotID    string    `db:"slot_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
