package dto

import (
	"mime/multipart"

	"turfbook/internal/domains/turf/model"
	"turfbook/shared"
	gDto "turfbook/shared/dto"
	gModel "turfbook/shared/model"
	"turfbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateTurfRequest struct {
	Name         string   `json:"name"          validate:"required,max=100"`
	Rent         int      `json:"rent"          validate:"min=0"`
	Amenities    []string `json:"amenities"     validate:"omitempty,dive,max=50"`
	Phone        string   `json:"phone"         validate:"omitempty,max=20"`
	Email        string   `json:"email"         validate:"omitempty,email,max=100"`
	Address      string   `json:"address"       validate:"required,max=255"`
	OpeningHour  int      `json:"opening_hour"  validate:"min=0,max=23"`
	SlotDuration int      `json:"slot_duration" validate:"required,min=1,max=1440"`
}

// ToModel builds a new turf owned by user. Turfs start INACTIVE until the owner publishes them.
func (c *CreateTurfRequest) ToModel(user string) model.Turf {
	now := timezone.Now()

	return model.Turf{
		ID:           uuid.NewString(),
		Name:         c.Name,
		OwnerID:      user,
		Rent:         c.Rent,
		Amenities:    pq.StringArray(c.Amenities),
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		OpeningHour:  c.OpeningHour,
		SlotDuration: c.SlotDuration,
		Status:       model.StatusInactive,
		Metadata:     gModel.NewMetadata(user, now),
	}
}

// UpdateTurfRequest only touches the fields that are set.
// Schedule changes apply to days that have not been generated yet.
type UpdateTurfRequest struct {
	Name         string         `db:"name"          json:"name"          validate:"omitempty,max=100"`
	Rent         *int           `db:"rent"          json:"rent"          validate:"omitempty,min=0"`
	Amenities    pq.StringArray `db:"amenities"     json:"amenities"     validate:"omitempty,dive,max=50"`
	Phone        string         `db:"phone"         json:"phone"         validate:"omitempty,max=20"`
	Email        string         `db:"email"         json:"email"         validate:"omitempty,email,max=100"`
	Address      string         `db:"address"       json:"address"       validate:"omitempty,max=255"`
	OpeningHour  *int           `db:"opening_hour"  json:"opening_hour"  validate:"omitempty,min=0,max=23"`
	SlotDuration *int           `db:"slot_duration" json:"slot_duration" validate:"omitempty,min=1,max=1440"`
}

func (u *UpdateTurfRequest) IsEmpty() bool {
	return u.Name == "" && u.Rent == nil && len(u.Amenities) == 0 && u.Phone == "" &&
		u.Email == "" && u.Address == "" && u.OpeningHour == nil && u.SlotDuration == nil
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

type TurfResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	OwnerID      string   `json:"owner_id"`
	Rent         int      `json:"rent"`
	Amenities    []string `json:"amenities"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Address      string   `json:"address"`
	OpeningHour  int      `json:"opening_hour"`
	SlotDuration int      `json:"slot_duration"`
	Status       string   `json:"status"`
	Image        string   `json:"image"`
	gDto.Metadata
}

func (r *TurfResponse) FromModel(model model.Turf) {
	r.ID = model.ID
	r.Name = model.Name
	r.OwnerID = model.OwnerID
	r.Rent = model.Rent
	r.Amenities = []string(model.Amenities)
	r.Phone = model.Phone
	r.Email = model.Email
	r.Address = model.Address
	r.OpeningHour = model.OpeningHour
	r.SlotDuration = model.SlotDuration
	r.Status = model.Status
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetTurfsResponse struct {
	Turfs     []TurfResponse `json:"turfs"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTurfsResponse) FromModels(models []model.Turf, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Turfs = make([]TurfResponse, len(models))
	for i, mod := range models {
		r.Turfs[i].FromModel(mod)
	}
}
