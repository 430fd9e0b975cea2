package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"nyumbani/infras/otel"
	"nyumbani/internal/domains/booking/model/dto"
	"nyumbani/internal/domains/booking/service"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/session"
	"nyumbani/shared/validator"
	"nyumbani/transport/http/response"
)

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
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.TransitionBooking)
		routerGroup.Post("/{id}/feedback", handler.SubmitFeedback)
	})
}

// CreateBooking submits a viewing request for a property.
// @Summary Create a booking request
// @Description Submit a viewing request. Validation errors come back as a field-keyed map and nothing is persisted on failure.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking request details"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking request created"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	sess, _ := session.FromContext(ctx)

	var req dto.CreateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, sess, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking request created successfully by user " + sess.UserID)

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings lists booking requests visible to the caller.
// @Summary Get booking requests
// @Description Tenants see their own requests, admins the ones assigned to them, superadmins all.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of booking requests"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	sess, _ := session.FromContext(ctx)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetAll(ctx, sess, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking requests")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking requests retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves one booking request.
// @Summary Get a booking request by ID
// @Description Retrieve a booking request the caller is allowed to see.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking request ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking request details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	sess, _ := session.FromContext(ctx)

	booking, err := handler.service.Get(ctx, sess, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking request by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking request retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// TransitionBooking applies a status change to a booking request.
// @Summary Change a booking request's status
// @Description Apply a lifecycle transition: approve, decline, complete or cancel. Invalid transitions leave the row untouched.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking request ID"
// @Param request body dto.TransitionRequest true "Target status and transition fields"
// @Success 200 {object} response.Data[dto.BookingResponse] "Updated booking request"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) TransitionBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	sess, _ := session.FromContext(ctx)

	var req dto.TransitionRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Transition(ctx, sess, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to transition booking request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking request transitioned successfully by user " + sess.UserID)

	response.WithJSON(w, http.StatusOK, booking)
}

// SubmitFeedback records a tenant's feedback on a completed viewing.
// @Summary Submit booking feedback
// @Description Record a 1-5 rating and optional comment. Only the requesting tenant may do this, and only once the request is completed.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking request ID"
// @Param request body dto.FeedbackRequest true "Rating and comment"
// @Success 200 {object} response.Message "Feedback recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/feedback [post]
// @Security BearerAuth
func (handler *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitFeedback")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	sess, _ := session.FromContext(ctx)

	var req dto.FeedbackRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Feedback(ctx, sess, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record feedback")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Feedback recorded successfully by user " + sess.UserID)

	response.WithMessage(w, http.StatusOK, "Feedback recorded successfully")
}
