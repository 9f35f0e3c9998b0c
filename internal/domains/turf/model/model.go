package model

import (
	"turfbook/shared/constant"
	"turfbook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "turfs"
	EntityName = "turf"

	FieldID           = "id"
	FieldName         = "name"
	FieldOwnerID      = "owner_id"
	FieldRent         = "rent"
	FieldAmenities    = "amenities"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldAddress      = "address"
	FieldOpeningHour  = "opening_hour"
	FieldSlotDuration = "slot_duration"
	FieldStatus       = "status"
	FieldImage        = "image"
	FieldModifiedAt   = "modified_at"
	FieldModifiedBy   = "modified_by"
)

const (
	StatusInactive = "INACTIVE"
	StatusActive   = "ACTIVE"
)

// Turf is a bookable venue. OpeningHour and SlotDuration drive its slot calendar.
type Turf struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	OwnerID      string         `db:"owner_id"`
	Rent         int            `db:"rent"`
	Amenities    pq.StringArray `db:"amenities"`
	Phone        string         `db:"phone"`
	Email        string         `db:"email"`
	Address      string         `db:"address"`
	OpeningHour  int            `db:"opening_hour"`
	SlotDuration int            `db:"slot_duration"`
	Status       string         `db:"status"`
	Image        string         `db:"image"`
	model.Metadata
}

func (t Turf) OpeningMinute() int {
	return t.OpeningHour * 60
}

// ManageableBy reports whether the user may change this turf.
func (t Turf) ManageableBy(userID, role string) bool {
	return role == constant.RoleSuperAdmin || (userID != "" && t.OwnerID == userID)
}
