package dto

import (
	"time"

	"turfbook/internal/domains/slot/model"
	"turfbook/shared/constant"
	gModel "turfbook/shared/model"
	"turfbook/shared/timezone"

	"github.com/google/uuid"
)

type GetSlotsRequest struct {
	TurfID string `json:"turf_id" validate:"required,uuid"`
	Date   string `json:"date"    validate:"omitempty,day"`
}

// Day parses the requested date, today at the venues when none was given.
// It assumes the request already passed validation.
func (r *GetSlotsRequest) Day() time.Time {
	if r.Date == "" {
		return timezone.Today()
	}

	day, _ := timezone.ParseDay(r.Date)

	return day
}

// NewVacantSlots builds the VACANT slots of one turf day.
func NewVacantSlots(turfID string, day time.Time, intervals []model.TimeInterval) []model.Slot {
	now := timezone.Now()
	slots := make([]model.Slot, len(intervals))

	for i, interval := range intervals {
		slots[i] = model.Slot{
			ID:           uuid.NewString(),
			TurfID:       turfID,
			SlotDate:     model.Day(day),
			TimeInterval: interval,
			Status:       model.StatusVacant,
			Metadata:     gModel.NewMetadata(constant.ContextSystem, now),
		}
	}

	return slots
}

type SlotResponse struct {
	ID        string `json:"id"`
	TurfID    string `json:"turf_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	BookingID string `json:"booking_id,omitempty"`
}

func (r *SlotResponse) FromModel(slot model.Slot) {
	r.ID = slot.ID
	r.TurfID = slot.TurfID
	r.Date = slot.SlotDate.Format(constant.DayFormat)
	r.StartTime = slot.Start()
	r.EndTime = slot.End()
	r.Status = slot.Status

	if slot.BookingID != nil {
		r.BookingID = *slot.BookingID
	}
}

type GetSlotsResponse struct {
	TurfID string         `json:"turf_id"`
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
}

func (r *GetSlotsResponse) FromModels(turfID string, day time.Time, slots []model.Slot) {
	r.TurfID = turfID
	r.Date = day.Format(constant.DayFormat)

	r.Slots = make([]SlotResponse, len(slots))
	for i, slot := range slots {
		r.Slots[i].FromModel(slot)
	}
}
