package booking

import (
	"net/http"

	"turfbook/infras/otel"
	"turfbook/internal/domains/booking/model"
	"turfbook/internal/domains/booking/model/dto"
	"turfbook/internal/domains/booking/service"
	"turfbook/shared"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"
	"turfbook/shared/validator"
	"turfbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldBookedAt, constant.FieldCreatedAt, model.FieldAmount}

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/slots/{id}/reservations", handler.ReserveSlot)

	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
	})
}

// ReserveSlot books a slot for the authenticated user.
// @Summary Reserve a slot
// @Description Book a vacant slot. Concurrent requests for the same slot get exactly one winner; the others receive 409 and should pick another slot.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param request body dto.ReserveSlotRequest false "Reserve Slot Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error "Slot not found"
// @Failure 409 {object} response.Error "Slot taken by another user"
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/slots/{id}/reservations [post]
// @Security BearerAuth
func (handler *Handler) ReserveSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReserveSlot")
	defer scope.End()

	userID, _, err := shared.Requester(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.ReserveSlotRequest{}

	if request.ContentLength != 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	}

	slotID := chi.URLParam(request, constant.RequestParamID)

	// ids that cannot exist never reach the store
	if err := validator.ValidateVar(slotID, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(writer, failure.SlotNotFound)

		return
	}

	booking, err := handler.service.Reserve(ctx, slotID, userID, req.TransactionRef)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("slot_id", slotID).Msg("failed to reserve slot")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Slot reserved successfully by user " + userID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetMyBookings retrieves the bookings of the authenticated user.
// @Summary Get my bookings
// @Description Retrieve the bookings of the authenticated user with pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters (sort_by: booked_at, created_at, amount)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of user's bookings"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	userID, _, err := shared.Requester(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	if err := queryParams.AllowSortBy(sortableFields...); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetMine(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User bookings retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve one booking. Only its owner or a superadmin can read it.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	userID, role, err := shared.Requester(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BookingNotFound)

		return
	}

	booking, err := handler.service.Get(ctx, id, userID, role)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}
