package dto

import (
	"turfbook/internal/domains/booking/model"
	slotModel "turfbook/internal/domains/slot/model"
	"turfbook/shared"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	gModel "turfbook/shared/model"
	"turfbook/shared/timezone"

	"github.com/google/uuid"
)

type ReserveSlotRequest struct {
	TransactionRef string `json:"transaction_ref" validate:"omitempty,max=64"`
}

// Pricing carries the two numbers stored on a booking.
type Pricing struct {
	Amount         int
	Discount       int
	TransactionRef string
}

// NewBooking builds the booking of user on slot.
func NewBooking(slot slotModel.Slot, user string, pricing Pricing) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:             uuid.NewString(),
		UserID:         user,
		TurfID:         slot.TurfID,
		SlotID:         slot.ID,
		Amount:         pricing.Amount,
		Discount:       pricing.Discount,
		TransactionRef: pricing.TransactionRef,
		BookedAt:       now,
		SlotDate:       slot.SlotDate,
		StartMinute:    slot.StartMinute,
		EndMinute:      slot.EndMinute,
		Metadata:       gModel.NewMetadata(user, now),
	}
}

func NewIntent(slotID, user string) model.ReservationIntent {
	return model.ReservationIntent{
		SlotID:    slotID,
		UserID:    user,
		CreatedAt: timezone.Now(),
	}
}

func NewBookingCreated(booking model.Booking) model.BookingCreated {
	interval := booking.Interval()

	return model.BookingCreated{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		TurfID:    booking.TurfID,
		SlotID:    booking.SlotID,
		SlotDate:  booking.SlotDate.Format(constant.DayFormat),
		StartTime: interval.Start(),
		EndTime:   interval.End(),
		Amount:    booking.Amount,
		Discount:  booking.Discount,
		BookedAt:  timezone.Format(booking.BookedAt, constant.DateFormat),
	}
}

type BookingResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	TurfID         string `json:"turf_id"`
	SlotID         string `json:"slot_id"`
	SlotDate       string `json:"slot_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Amount         int    `json:"amount"`
	Discount       int    `json:"discount"`
	TransactionRef string `json:"transaction_ref"`
	BookedAt       string `json:"booked_at"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	interval := model.Interval()

	r.ID = model.ID
	r.UserID = model.UserID
	r.TurfID = model.TurfID
	r.SlotID = model.SlotID
	r.SlotDate = model.SlotDate.Format(constant.DayFormat)
	r.StartTime = interval.Start()
	r.EndTime = interval.End()
	r.Amount = model.Amount
	r.Discount = model.Discount
	r.TransactionRef = model.TransactionRef
	r.BookedAt = timezone.Format(model.BookedAt, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// ReconcileResult counts what one sweep over stale intents did.
type ReconcileResult struct {
	Scanned   int `json:"scanned"`
	Completed int `json:"completed"`
	Released  int `json:"released"`
	Failed    int `json:"failed"`
}
