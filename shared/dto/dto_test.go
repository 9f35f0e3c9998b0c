package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"turfbook/shared/constant"
	"turfbook/shared/dto"
	"turfbook/shared/failure"
	"turfbook/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, time.June, 10, 6, 0, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: createdAt.Add(time.Hour),
		CreatedBy:  "owner-1",
		ModifiedBy: "superadmin",
	})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEqual(t, metadata.CreatedAt, metadata.ModifiedAt)
	assert.Equal(t, "owner-1", metadata.CreatedBy)
	assert.Equal(t, "superadmin", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		defaults bool
		want     dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=booked_at&sort_dir=asc",
			defaults: true,
			want:     dto.QueryParams{Page: 2, Limit: 20, SortBy: "booked_at", SortDir: dto.SortDirAsc},
		},
		{
			name:     "defaults applied",
			defaults: true,
			want:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name: "no defaults",
			want: dto.QueryParams{},
		},
		{
			name:     "malformed numbers fall back",
			query:    "page=abc&limit=-4",
			defaults: true,
			want:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit capped",
			query:    "limit=5000",
			defaults: true,
			want:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
		{
			name:  "unknown direction ignored",
			query: "sort_dir=sideways",
			want:  dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params dto.QueryParams
			params.FromRequest(httptest.NewRequest("GET", "/v1/bookings/mybookings?"+tt.query, nil), tt.defaults)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_AllowSortBy(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		wantErr bool
	}{
		{name: "empty", sortBy: ""},
		{name: "allowed", sortBy: "booked_at"},
		{name: "not allowed", sortBy: "amount", wantErr: true},
		{name: "injection", sortBy: "booked_at; DROP TABLE bookings", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := dto.QueryParams{SortBy: tt.sortBy}

			err := params.AllowSortBy("booked_at", "created_at")
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}
