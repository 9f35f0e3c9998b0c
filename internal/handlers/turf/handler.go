package turf

import (
	"net/http"

	"turfbook/infras/otel"
	"turfbook/internal/domains/turf/model"
	"turfbook/internal/domains/turf/model/dto"
	"turfbook/internal/domains/turf/service"
	"turfbook/shared"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"
	"turfbook/shared/validator"
	"turfbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formImage = "image"

var sortableFields = []string{model.FieldName, model.FieldRent, constant.FieldCreatedAt}

type Handler struct {
	service service.Turf
	otel    otel.Otel
}

func New(service service.Turf, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/turfs", handler.CreateTurf)
	router.Get("/turfs", handler.GetTurfs)
	router.Get("/turfs/{id}", handler.GetTurfByID)
	router.Patch("/turfs/{id}", handler.UpdateTurf)
	router.Patch("/turfs/{id}/activate", handler.ActivateTurf)
	router.Patch("/turfs/{id}/deactivate", handler.DeactivateTurf)
	router.Put("/turfs/{id}/image", handler.UploadImage)
}

// CreateTurf handles the creation of a new turf.
// @Summary Create a new turf
// @Description Register a turf owned by the authenticated user. New turfs start INACTIVE.
// @Tags Turf
// @Accept json
// @Produce json
// @Param request body dto.CreateTurfRequest true "Create Turf Request"
// @Success 201 {object} response.Data[dto.TurfResponse] "Turf created"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs [post]
// @Security BearerAuth
func (handler *Handler) CreateTurf(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTurf")
	defer scope.End()

	user, _, err := shared.Requester(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateTurfRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	turf, err := handler.service.Create(ctx, req, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create turf")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Turf created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, turf)
}

// GetTurfs retrieves turfs based on query parameters.
// @Summary Get all turfs
// @Description Retrieve turfs with optional filtering and pagination.
// @Tags Turf
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters (sort_by: name, rent, created_at)"
// @Param name query string false "Filter by name"
// @Param owner_id query string false "Filter by owner"
// @Param status query string false "Filter by status (ACTIVE, INACTIVE)"
// @Success 200 {object} response.Data[dto.GetTurfsResponse] "List of turfs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs [get]
func (handler *Handler) GetTurfs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTurfs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	if err := queryParams.AllowSortBy(sortableFields...); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := query.Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if ownerID := query.Get(model.FieldOwnerID); ownerID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldOwnerID,
			Operator: gDto.FilterOperatorEq,
			Value:    ownerID,
			Table:    model.TableName,
		})
	}

	if status := query.Get(model.FieldStatus); status != "" {
		if status != model.StatusActive && status != model.StatusInactive {
			err := failure.BadRequestFromString("status must be ACTIVE or INACTIVE")
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	turfs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get turfs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Turfs retrieved successfully")

	response.WithJSON(w, http.StatusOK, turfs)
}

// GetTurfByID retrieves a turf by its ID.
// @Summary Get a turf by ID
// @Description Retrieve a turf by its unique identifier.
// @Tags Turf
// @Accept json
// @Produce json
// @Param id path string true "Turf ID"
// @Success 200 {object} response.Data[dto.TurfResponse] "Turf details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs/{id} [get]
func (handler *Handler) GetTurfByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTurfByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	turf, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get turf by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Turf retrieved successfully")

	response.WithJSON(w, http.StatusOK, turf)
}

// UpdateTurf updates an existing turf.
// @Summary Update a turf by ID
// @Description Update the details of a turf. Only its owner or a superadmin can update it. Schedule changes apply to days not generated yet.
// @Tags Turf
// @Accept json
// @Produce json
// @Param id path string true "Turf ID"
// @Param request body dto.UpdateTurfRequest true "Update Turf Request"
// @Success 200 {object} response.Message "Turf updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTurf(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTurf")
	defer scope.End()

	user, role, err := shared.Requester(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateTurfRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id, user, role); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update turf")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Turf updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Turf updated successfully")
}

// ActivateTurf publishes a turf.
// @Summary Activate a turf
// @Tags Turf
// @Produce json
// @Param id path string true "Turf ID"
// @Success 200 {object} response.Message "Turf activated successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs/{id}/activate [patch]
// @Security BearerAuth
func (handler *Handler) ActivateTurf(w http.ResponseWriter, r *http.Request) {
	handler.setStatus(w, r, model.StatusActive, "Turf activated successfully")
}

// DeactivateTurf withdraws a turf.
// @Summary Deactivate a turf
// @Tags Turf
// @Produce json
// @Param id path string true "Turf ID"
// @Success 200 {object} response.Message "Turf deactivated successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs/{id}/deactivate [patch]
// @Security BearerAuth
func (handler *Handler) DeactivateTurf(w http.ResponseWriter, r *http.Request) {
	handler.setStatus(w, r, model.StatusInactive, "Turf deactivated successfully")
}

func (handler *Handler) setStatus(w http.ResponseWriter, r *http.Request, status, message string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetTurfStatus")
	defer scope.End()

	user, role, err := shared.Requester(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.SetStatus(ctx, id, status, user, role); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("status", status).Msg("failed to change turf status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Turf status changed to " + status + " by user " + user)

	response.WithMessage(w, http.StatusOK, message)
}

// UploadImage replaces the cover image of a turf.
// @Summary Upload turf image
// @Description Upload a PNG or JPEG cover image up to 1 MB.
// @Tags Turf
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Turf ID"
// @Param image formData file true "Turf image"
// @Success 200 {object} response.Data[string] "Image URL"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs/{id}/image [put]
// @Security BearerAuth
func (handler *Handler) UploadImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadTurfImage")
	defer scope.End()

	user, role, err := shared.Requester(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.UploadImageRequest{}

	file, fileHeader, err := request.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	url, err := handler.service.UploadImage(ctx, req, id, user, role)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload turf image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Turf image uploaded successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, url)
}
