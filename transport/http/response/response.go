package response

import (
	"encoding/json"
	"net/http"

	"turfbook/shared/constant"
	"turfbook/shared/failure"
	"turfbook/shared/logger"

	"github.com/rs/zerolog/log"
)

// Data wraps every successful payload as {"data": ...}.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError answers with the status and message of the failure carried by err.
// Any other error is logged and answered with a generic 500.
func WithError(writer http.ResponseWriter, err error) {
	fail, ok := failure.As(err)
	if !ok {
		log.Error().Err(err).Msg("unhandled error reached the transport")

		fail = failure.New(http.StatusInternalServerError, constant.ResponseErrorGeneric)
	}

	write(writer, fail.Code, Error{Error: &fail.Message})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response body")
	}
}
