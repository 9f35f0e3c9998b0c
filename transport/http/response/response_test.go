package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"turfbook/shared/constant"
	"turfbook/shared/failure"
	"turfbook/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var body response.Error
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return *body.Error
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "contended slot",
			err:      fmt.Errorf("failed to reserve slot: %w", failure.SlotContended),
			wantCode: http.StatusConflict,
			wantMsg:  failure.SlotContended.Message,
		},
		{
			name:     "not found",
			err:      failure.SlotNotFound,
			wantCode: http.StatusNotFound,
			wantMsg:  failure.SlotNotFound.Message,
		},
		{
			name:     "infrastructure error is hidden",
			err:      errors.New("pq: relation \"slots\" does not exist"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  constant.ResponseErrorGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, constant.ContentTypeJSON, recorder.Header().Get(constant.RequestHeaderContentType))
			assert.Equal(t, tt.wantMsg, decodeError(t, recorder))
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]string{"id": "b-1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"id":"b-1"}}`, recorder.Body.String())
}

func TestWithRequestLimitExceeded(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithRequestLimitExceeded(recorder)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Contains(t, recorder.Body.String(), constant.ResponseErrorRequestLimitExceeded)
}

func TestWithJSON_Unencodable(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

func TestWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithMessage(recorder, http.StatusOK, "OK")

	assert.JSONEq(t, `{"message":"OK"}`, recorder.Body.String())
}
