package dto

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"turfbook/shared/constant"
	"turfbook/shared/failure"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Malformed values are ignored. With defaults set, a missing page or limit
// falls back to the defaults, and limit is capped at MaxValueLimit.
func (q *QueryParams) FromRequest(r *http.Request, defaults bool) {
	query := r.URL.Query()

	q.Page = positiveInt(query.Get(constant.RequestParamPage), q.Page)
	q.Limit = positiveInt(query.Get(constant.RequestParamLimit), q.Limit)

	if sortBy := query.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if !defaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	q.Limit = min(q.Limit, constant.MaxValueLimit)
}

func positiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}

// AllowSortBy rejects a sort_by outside fields. Sort columns end up in the
// ORDER BY clause verbatim.
func (q *QueryParams) AllowSortBy(fields ...string) error {
	if q.SortBy == "" || slices.Contains(fields, q.SortBy) {
		return nil
	}

	return failure.BadRequestFromString("invalid sort_by parameter, allowed: " + strings.Join(fields, ", "))
}
