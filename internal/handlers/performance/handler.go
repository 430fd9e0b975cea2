package performance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"nyumbani/infras/otel"
	"nyumbani/internal/domains/performance/model/dto"
	"nyumbani/internal/domains/performance/service"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/session"
	"nyumbani/shared/timezone"
	"nyumbani/shared/validator"
	"nyumbani/transport/http/response"
)

type Handler struct {
	service service.Performance
	otel    otel.Otel
}

func New(service service.Performance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/performance", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPerformances)
		routerGroup.Get("/scoreboard", handler.GetScoreboard)
		routerGroup.Get("/{id}", handler.GetPerformanceByAdmin)
		routerGroup.Put("/", handler.UpsertPerformance)
	})
}

// GetPerformances lists all monthly KPI rows.
// @Summary Get all performance records
// @Description Retrieve monthly KPI rows with pagination.
// @Tags Performance
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPerformancesResponse] "List of performance records"
// @Failure 500 {object} response.Error
// @Router /v1/performance [get]
// @Security BearerAuth
func (handler *Handler) GetPerformances(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPerformances")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	performances, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get performance records")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Performance records retrieved successfully")

	response.WithJSON(w, http.StatusOK, performances)
}

// GetScoreboard ranks every admin for a month.
// @Summary Get the monthly scoreboard
// @Description Rank admins by composite KPI score for the given month, with trends against the preceding month. Defaults to the current month.
// @Tags Performance
// @Accept json
// @Produce json
// @Param month query string false "Month in YYYY-MM form"
// @Success 200 {object} response.Data[dto.ScoreboardResponse] "Ranked scoreboard"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/performance/scoreboard [get]
// @Security BearerAuth
func (handler *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetScoreboard")
	defer scope.End()

	month := r.URL.Query().Get("month")
	if month == "" {
		month = timezone.Now().Format(constant.MonthFormat)
	}

	if err := validator.ValidateVar(month, "datetime=2006-01"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid month parameter")

		response.WithError(w, err)

		return
	}

	scoreboard, err := handler.service.Scoreboard(ctx, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get scoreboard")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Scoreboard retrieved successfully")

	response.WithJSON(w, http.StatusOK, scoreboard)
}

// GetPerformanceByAdmin lists one admin's monthly rows.
// @Summary Get an admin's performance records
// @Description Retrieve the monthly KPI rows of one admin. Admins may only read their own.
// @Tags Performance
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPerformancesResponse] "Performance records"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/performance/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPerformanceByAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPerformanceByAdmin")
	defer scope.End()

	adminID := chi.URLParam(r, constant.RequestParamID)
	sess, _ := session.FromContext(ctx)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	performances, err := handler.service.GetByAdmin(ctx, sess, adminID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admin performance records")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin performance records retrieved successfully")

	response.WithJSON(w, http.StatusOK, performances)
}

// UpsertPerformance writes an admin's KPI row for a month.
// @Summary Upsert a performance record
// @Description Insert or overwrite the KPI row for (admin, month).
// @Tags Performance
// @Accept json
// @Produce json
// @Param request body dto.UpsertPerformanceRequest true "KPI figures"
// @Success 200 {object} response.Message "Performance record saved"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/performance [put]
// @Security BearerAuth
func (handler *Handler) UpsertPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertPerformance")
	defer scope.End()

	sess, _ := session.FromContext(ctx)

	var req dto.UpsertPerformanceRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Upsert(ctx, sess, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert performance record")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Performance record saved by user " + sess.UserID)

	response.WithMessage(w, http.StatusOK, "Performance record saved")
}
