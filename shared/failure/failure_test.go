package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"turfbook/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestReservationFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
	}{
		{name: "contended", failure: failure.SlotContended, code: http.StatusConflict},
		{name: "slot not found", failure: failure.SlotNotFound, code: http.StatusNotFound},
		{name: "already booked", failure: failure.SlotAlreadyBooked, code: http.StatusInternalServerError},
		{name: "store unavailable", failure: failure.StoreUnavailable, code: http.StatusServiceUnavailable},
		{name: "invalid configuration", failure: failure.InvalidConfiguration, code: http.StatusUnprocessableEntity},
		{name: "turf not found", failure: failure.ResourceNotFound, code: http.StatusNotFound},
		{name: "restricted", failure: failure.ResourceRestrictedError, code: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.failure.Code)
			assert.NotEmpty(t, tt.failure.Error())
		})
	}
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, &failure.Failure{Code: http.StatusBadRequest, Message: "date is required"}, failure.BadRequest(errors.New("date is required")))
	assert.NoError(t, failure.BadRequest(nil))
	assert.Equal(t, &failure.Failure{Code: http.StatusBadRequest, Message: "bad sort"}, failure.BadRequestFromString("bad sort"))
	assert.Equal(t, &failure.Failure{Code: http.StatusUnauthorized, Message: "token expired"}, failure.Unauthorized("token expired"))
	assert.Equal(t, &failure.Failure{Code: http.StatusNotFound, Message: "booking not found"}, failure.NotFound("booking not found"))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "failure", err: failure.SlotContended, want: http.StatusConflict},
		{name: "wrapped failure", err: fmt.Errorf("failed to reserve slot: %w", failure.SlotContended), want: http.StatusConflict},
		{name: "joined failure", err: errors.Join(errors.New("conn reset"), failure.StoreUnavailable), want: http.StatusServiceUnavailable},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "nil", err: nil, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestAs(t *testing.T) {
	fail, ok := failure.As(fmt.Errorf("failed to get slot: %w", failure.SlotNotFound))
	assert.True(t, ok)
	assert.Same(t, failure.SlotNotFound, fail)

	_, ok = failure.As(errors.New("boom"))
	assert.False(t, ok)
	assert.False(t, failure.IsFailure(nil))
	assert.True(t, failure.IsFailure(failure.ForbiddenError))
}
