package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"turfbook/shared/failure"
	"turfbook/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type turfRequest struct {
	Name         string `json:"name"          validate:"required,max=20"`
	Email        string `json:"email"         validate:"omitempty,email"`
	OpeningHour  int    `json:"opening_hour"  validate:"min=0,max=23"`
	SlotDuration int    `json:"slot_duration" validate:"required,min=1,max=1440"`
	Status       string `json:"status"        validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Date         string `json:"date"          validate:"omitempty,day"`
}

func validRequest() turfRequest {
	return turfRequest{Name: "Arena", OpeningHour: 6, SlotDuration: 60}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*turfRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(*turfRequest) {}},
		{name: "missing name", mutate: func(r *turfRequest) { r.Name = "" }, wantMsg: "name is required"},
		{name: "long name", mutate: func(r *turfRequest) { r.Name = strings.Repeat("a", 21) }, wantMsg: "name must be less than or equal to 20"},
		{name: "bad email", mutate: func(r *turfRequest) { r.Email = "nope" }, wantMsg: "email must be a valid email address"},
		{name: "opening hour", mutate: func(r *turfRequest) { r.OpeningHour = 24 }, wantMsg: "opening_hour must be less than or equal to 23"},
		{name: "zero duration", mutate: func(r *turfRequest) { r.SlotDuration = 0 }, wantMsg: "slot_duration is required"},
		{name: "status", mutate: func(r *turfRequest) { r.Status = "OPEN" }, wantMsg: "status must be one of ACTIVE INACTIVE"},
		{name: "date format", mutate: func(r *turfRequest) { r.Date = "12/06/2024" }, wantMsg: "date must be a date in YYYY-MM-DD format"},
		{name: "valid date", mutate: func(r *turfRequest) { r.Date = "2024-06-12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidate(t *testing.T) {
	var req turfRequest

	err := validator.Validate(strings.NewReader(`{"name":"Arena","opening_hour":6,"slot_duration":60}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "Arena", req.Name)

	err = validator.Validate(strings.NewReader(`{"name":`), &req)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")

	err = validator.Validate(strings.NewReader(`{"opening_hour":6,"slot_duration":60}`), &turfRequest{})
	assert.EqualError(t, err, "name is required")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("0b0f4a8e-6c7d-4f39-9a51-2d3c4b5a6978", "uuid"))
	assert.EqualError(t, validator.ValidateVar("turf-1", "uuid"), "value must be a valid UUID")
}

type upload struct {
	Image *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func image(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "cover",
		Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
		Size:     size,
	}
}

func TestFileRules(t *testing.T) {
	tests := []struct {
		name    string
		image   *multipart.FileHeader
		wantMsg string
	}{
		{name: "png", image: image("image/png", 512*1024)},
		{name: "jpeg at limit", image: image("image/jpeg", 1<<20)},
		{name: "gif", image: image("image/gif", 1024), wantMsg: "image must be one of image/png image/jpeg"},
		{name: "too large", image: image("image/png", 2<<20), wantMsg: "image must not exceed 1 MB"},
		{name: "missing", wantMsg: "image is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&upload{Image: tt.image})
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}
