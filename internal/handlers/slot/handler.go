package slot

import (
	"net/http"

	"turfbook/infras/otel"
	"turfbook/internal/domains/slot/model/dto"
	"turfbook/internal/domains/slot/service"
	"turfbook/shared/constant"
	"turfbook/shared/validator"
	"turfbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Slot
	otel    otel.Otel
}

func New(service service.Slot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/turfs/{id}/slots", handler.GetSlots)
}

// GetSlots lists the slots of a turf for one day.
// @Summary Get slots of a turf day
// @Description List the slots of a turf for a date ordered by start time. The whole Monday-aligned week is generated on first access.
// @Tags Slot
// @Accept json
// @Produce json
// @Param id path string true "Turf ID"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.GetSlotsResponse] "Slots of the day"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "Turf not found"
// @Failure 422 {object} response.Error "Invalid slot configuration"
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/turfs/{id}/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	req := dto.GetSlotsRequest{
		TurfID: chi.URLParam(r, constant.RequestParamID),
		Date:   r.URL.Query().Get(constant.RequestParamDate),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	slots, err := handler.service.GetOrGenerateSlots(ctx, req.TurfID, req.Day())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("turf_id", req.TurfID).Str("date", req.Date).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, slots)
}
