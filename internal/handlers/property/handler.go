package property

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"nyumbani/infras/otel"
	"nyumbani/internal/domains/property/model"
	"nyumbani/internal/domains/property/model/dto"
	"nyumbani/internal/domains/property/service"
	"nyumbani/shared"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/session"
	"nyumbani/shared/validator"
	"nyumbani/transport/http/response"
)

type Handler struct {
	service service.Property
	otel    otel.Otel
}

func New(service service.Property, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/properties", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProperty)
		routerGroup.Get("/", handler.GetProperties)
		routerGroup.Get("/search", handler.SearchProperties)
		routerGroup.Get("/{id}", handler.GetPropertyByID)
		routerGroup.Patch("/{id}", handler.UpdateProperty)
		routerGroup.Delete("/{id}", handler.DeleteProperty)
		routerGroup.Post("/{id}/retire", handler.RetireProperty)
		routerGroup.Post("/{id}/images", handler.AddImage)
		routerGroup.Post("/assign", handler.AssignAdminBulk)
	})
}

// CreateProperty registers a new listing.
// @Summary Create a new property
// @Description Create a property listing. Fee and total are derived from the rent.
// @Tags Property
// @Accept json
// @Produce json
// @Param request body dto.CreatePropertyRequest true "Property details"
// @Success 201 {object} response.Data[dto.PropertyResponse] "Property created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties [post]
// @Security BearerAuth
func (handler *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProperty")
	defer scope.End()

	sess, _ := session.FromContext(ctx)

	var req dto.CreatePropertyRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	prop, err := handler.service.Create(ctx, sess, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create property")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property created successfully by user " + sess.UserID)

	response.WithJSON(w, http.StatusCreated, prop)
}

// GetProperties retrieves listings with optional filters and pagination.
// @Summary Get all properties
// @Description Retrieve properties with optional filtering and pagination.
// @Tags Property
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param city query string false "Filter by city"
// @Param property_type query string false "Filter by type"
// @Param admin_id query string false "Filter by managing admin"
// @Param is_available query boolean false "Filter by availability"
// @Success 200 {object} response.Data[dto.GetPropertiesResponse] "List of properties"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties [get]
func (handler *Handler) GetProperties(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProperties")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if city := r.URL.Query().Get(model.FieldCity); city != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorLike,
			Value:    city,
			Table:    model.TableName,
		})
	}

	if propertyType := r.URL.Query().Get(model.FieldPropertyType); propertyType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPropertyType,
			Operator: gDto.FilterOperatorEq,
			Value:    propertyType,
			Table:    model.TableName,
		})
	}

	if adminID := r.URL.Query().Get(model.FieldAdminID); adminID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAdminID,
			Operator: gDto.FilterOperatorEq,
			Value:    adminID,
			Table:    model.TableName,
		})
	}

	if available := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsAvailable)); available != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableName,
		})
	}

	properties, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get properties")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Properties retrieved successfully")

	response.WithJSON(w, http.StatusOK, properties)
}

// SearchProperties runs the free-text search pipeline over the available
// listings.
// @Summary Search properties
// @Description Free-text search with fuzzy price terms, structured filters, sorting and load-more windowing.
// @Tags Property
// @Accept json
// @Produce json
// @Param q query string false "Free-text query, price terms like 500000 or 500k included"
// @Param city query string false "City substring filter"
// @Param min_price query number false "Minimum rent"
// @Param max_price query number false "Maximum rent"
// @Param property_type query string false "Exact property type"
// @Param min_bedrooms query integer false "Minimum bedrooms"
// @Param min_bathrooms query integer false "Minimum bathrooms"
// @Param amenities query string false "Comma-separated amenities, all required"
// @Param sort query string false "price-low, price-high, newest or featured"
// @Param visible query integer false "Current window size for load-more"
// @Param browse query boolean false "Use the browse grid page size"
// @Success 200 {object} response.Data[dto.SearchPropertiesResponse] "Search results"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/search [get]
func (handler *Handler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchProperties")
	defer scope.End()

	query := r.URL.Query()

	req := dto.SearchPropertiesRequest{
		Query:        query.Get("q"),
		City:         query.Get(model.FieldCity),
		PropertyType: query.Get(model.FieldPropertyType),
		SortBy:       query.Get("sort"),
	}

	if raw := query.Get("min_price"); raw != "" {
		if v, err := shared.ConvertStringToFloat(raw); err == nil {
			req.MinPrice = v
		}
	}

	if raw := query.Get("max_price"); raw != "" {
		if v, err := shared.ConvertStringToFloat(raw); err == nil {
			req.MaxPrice = v
		}
	}

	if raw := query.Get("min_bedrooms"); raw != "" {
		if v, err := shared.ConvertStringToInt(raw); err == nil {
			req.MinBedrooms = v
		}
	}

	if raw := query.Get("min_bathrooms"); raw != "" {
		if v, err := shared.ConvertStringToInt(raw); err == nil {
			req.MinBathrooms = v
		}
	}

	if raw := query.Get(model.FieldAmenities); raw != "" {
		req.Amenities = strings.Split(raw, ",")
	}

	if raw := query.Get("visible"); raw != "" {
		if v, err := shared.ConvertStringToInt(raw); err == nil {
			req.Visible = v
		}
	}

	if browse := shared.ConvertStringToBool(query.Get("browse")); browse != nil {
		req.Browse = *browse
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	results, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search properties")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Properties searched successfully")

	response.WithJSON(w, http.StatusOK, results)
}

// GetPropertyByID retrieves a single listing and records the view.
// @Summary Get a property by ID
// @Description Retrieve a property by its unique identifier. Bumps the view counter.
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Data[dto.PropertyResponse] "Property details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [get]
func (handler *Handler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPropertyByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	prop, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property by ID")

		response.WithError(w, err)

		return
	}

	if err := handler.service.IncrementViews(ctx, id); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("failed to record property view")
	}

	scope.AddEvent("Property retrieved successfully")

	response.WithJSON(w, http.StatusOK, prop)
}

// UpdateProperty updates an existing listing.
// @Summary Update a property by ID
// @Description Update a property. A changed rent recomputes the fee and total.
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body dto.UpdatePropertyRequest true "Fields to update"
// @Success 200 {object} response.Message "Property updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProperty")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	sess, _ := session.FromContext(ctx)

	var req dto.UpdatePropertyRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, sess, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update property")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property updated successfully by user " + sess.UserID)

	response.WithMessage(w, http.StatusOK, "Property updated successfully")
}

// DeleteProperty removes a listing permanently.
// @Summary Delete a property by ID
// @Description Delete a property. Prefer retiring listings with booking history.
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Message "Property deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProperty")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete property")

		response.WithError(w, err)

		return
	}

	sess, _ := session.FromContext(ctx)
	scope.AddEvent("Property deleted successfully by user " + sess.UserID)

	response.WithMessage(w, http.StatusOK, "Property deleted successfully")
}

// RetireProperty marks a listing unavailable while keeping its history.
// @Summary Retire a property
// @Description Mark a property unavailable without deleting it.
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Message "Property retired successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/retire [post]
// @Security BearerAuth
func (handler *Handler) RetireProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RetireProperty")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	sess, _ := session.FromContext(ctx)

	if err := handler.service.Retire(ctx, sess, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to retire property")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property retired successfully by user " + sess.UserID)

	response.WithMessage(w, http.StatusOK, "Property retired successfully")
}

// AddImage uploads an image and appends it to the listing.
// @Summary Add a property image
// @Description Upload an image to object storage and append its URL to the property.
// @Tags Property
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Property ID"
// @Param image formData file true "Image file"
// @Success 200 {object} response.Data[dto.PropertyResponse] "Property with the new image"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	sess, _ := session.FromContext(ctx)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	var req dto.AddImageRequest

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	prop, err := handler.service.AddImage(ctx, sess, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add property image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property image added successfully by user " + sess.UserID)

	response.WithJSON(w, http.StatusOK, prop)
}

// AssignAdminBulk reassigns a set of properties to one admin.
// @Summary Bulk assign properties to an admin
// @Description Reassign the given properties to one admin in a single transaction.
// @Tags Property
// @Accept json
// @Produce json
// @Param request body dto.AssignAdminBulkRequest true "Property IDs and target admin"
// @Success 200 {object} response.Message "Properties assigned successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/assign [post]
// @Security BearerAuth
func (handler *Handler) AssignAdminBulk(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignAdminBulk")
	defer scope.End()

	sess, _ := session.FromContext(ctx)

	var req dto.AssignAdminBulkRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AssignAdminBulk(ctx, sess, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to bulk assign properties")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Properties assigned successfully by user " + sess.UserID)

	response.WithMessage(w, http.StatusOK, "Properties assigned successfully")
}
