package model

// BookingCreated is published after a booking is stored and its slot is marked BOOKED.
type BookingCreated struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	TurfID    string `json:"turf_id"`
	SlotID    string `json:"slot_id"`
	SlotDate  string `json:"slot_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Amount    int    `json:"amount"`
	Discount  int    `json:"discount"`
	BookedAt  string `json:"booked_at"`
}
