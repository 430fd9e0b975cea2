package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"nyumbani/config"
	"nyumbani/infras/metrics"
	"nyumbani/infras/otel"
	"nyumbani/infras/s3"
	"nyumbani/internal/domains/property/model"
	"nyumbani/internal/domains/property/model/dto"
	"nyumbani/internal/domains/property/repository"
	"nyumbani/internal/domains/property/search"
	"nyumbani/shared"
	"nyumbani/shared/cache"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/failure"
	"nyumbani/shared/session"
	"nyumbani/shared/timezone"
)

const (
	cacheGetProperty    = "property:get"
	cacheGetAllProperty = "property:gets"
	cacheCountProperty  = "property:count"
)

type Property interface {
	Create(ctx context.Context, sess session.Session, req dto.CreatePropertyRequest) (dto.PropertyResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPropertiesResponse, error)
	GetByAdmin(ctx context.Context, adminID string, req gDto.QueryParams) (dto.GetPropertiesResponse, error)
	Get(ctx context.Context, id string) (dto.PropertyResponse, error)
	Update(ctx context.Context, sess session.Session, req dto.UpdatePropertyRequest, id string) error
	Delete(ctx context.Context, id string) error
	Retire(ctx context.Context, sess session.Session, id string) error
	Search(ctx context.Context, req dto.SearchPropertiesRequest) (dto.SearchPropertiesResponse, error)
	AssignAdminBulk(ctx context.Context, sess session.Session, req dto.AssignAdminBulkRequest) error
	AddImage(ctx context.Context, sess session.Session, req dto.AddImageRequest, id string) (dto.PropertyResponse, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementInquiries(ctx context.Context, id string) error
	IncrementBookings(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Property
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
	metrics  *metrics.Metrics
	snapshot *search.Snapshot
}

func New(repo repository.Property, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3, metrics *metrics.Metrics) Property {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
		metrics:  metrics,
		snapshot: search.NewSnapshot(),
	}
}

func (s *serviceImpl) Create(ctx context.Context, sess session.Session, req dto.CreatePropertyRequest) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !sess.IsAdmin() {
		return res, failure.Forbidden("only admins can create properties") //nolint:wrapcheck
	}

	prop := req.ToModel(sess.UserID, sess.UserID)

	if err = s.repo.Insert(ctx, prop); err != nil {
		return res, err
	}

	res.FromModel(prop)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for properties")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save properties to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByAdmin(ctx context.Context, adminID string, req gDto.QueryParams) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAdminID, Value: adminID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProperty, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property")

		return res, nil
	}

	prop, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if prop.ID == constant.Empty {
		return res, failure.NotFound("property not found") //nolint:wrapcheck
	}

	res.FromModel(prop)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, sess session.Session, req dto.UpdatePropertyRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !sess.IsAdmin() {
		return failure.Forbidden("only admins can update properties") //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check property existence")

		return err
	}

	if current.ID == constant.Empty {
		return failure.NotFound("property not found") //nolint:wrapcheck
	}

	if !sess.IsSuperAdmin() && current.AdminID != sess.UserID {
		return failure.Forbidden("property is managed by another admin") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, sess.UserID)

	// Fees are derived from rent and never accepted from clients.
	if req.RentAmount != nil {
		serviceFee, total := model.CalculateFees(*req.RentAmount)
		updatedFields[model.FieldServiceFee] = serviceFee
		updatedFields[model.FieldTotalAmount] = total
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update property")

		return fmt.Errorf("failed to update property: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if property exists")

		return fmt.Errorf("failed to check if property exists: %w", err)
	}

	if !exist {
		return failure.NotFound("property not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete property")

		return fmt.Errorf("failed to delete property: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Retire marks a property unavailable without deleting it, so its booking
// history stays intact.
func (s *serviceImpl) Retire(ctx context.Context, sess session.Session, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Retire")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !sess.IsAdmin() {
		return failure.Forbidden("only admins can retire properties") //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if property exists: %w", err)
	}

	if !exist {
		return failure.NotFound("property not found") //nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldIsAvailable:   false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: sess.UserID,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		return fmt.Errorf("failed to retire property: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Search loads the available candidate set and runs the in-memory pipeline
// over it. Every request is answered with its own result set; the response
// carries a token from the latest-wins snapshot sequence so clients can
// discard replies that arrive out of order.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchPropertiesRequest) (res dto.SearchPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	token := s.snapshot.Begin()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldIsAvailable, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	candidates, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load search candidates")

		return res, fmt.Errorf("failed to load search candidates: %w", err)
	}

	criteria := search.Criteria{
		City:         req.City,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		PropertyType: req.PropertyType,
		MinBedrooms:  req.MinBedrooms,
		MinBathrooms: req.MinBathrooms,
		Amenities:    req.Amenities,
	}

	matched := search.Apply(candidates, criteria, req.Query, req.SortBy)

	// Record this refresh against the token sequence. A publish with a
	// superseded token is dropped from the snapshot, but the caller still
	// gets the set matching its own query.
	s.snapshot.Publish(token, matched)

	visible := req.Visible
	if visible <= 0 {
		visible = search.SearchPageSize
		if req.Browse {
			visible = search.BrowsePageSize
		}
	}

	window := search.NewWindow(visible)
	page, hasMore := window.Slice(matched)

	res.FromModels(page, len(matched), hasMore, token)

	return res, nil
}

func (s *serviceImpl) AssignAdminBulk(ctx context.Context, sess session.Session, req dto.AssignAdminBulkRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignAdminBulk")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !sess.IsSuperAdmin() {
		return failure.Forbidden("only superadmins can reassign properties") //nolint:wrapcheck
	}

	if err = s.repo.AssignAdminBulk(ctx, req.PropertyIDs, req.AdminID, sess.UserID); err != nil {
		log.Error().Err(err).Msg("failed to bulk assign properties")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range req.PropertyIDs {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete property cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
	}()

	return nil
}

func (s *serviceImpl) AddImage(ctx context.Context, sess session.Session, req dto.AddImageRequest, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !sess.IsAdmin() {
		return res, failure.Forbidden("only admins can upload property images") //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	prop, err := s.repo.Get(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if prop.ID == constant.Empty {
		return res, failure.NotFound("property not found") //nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName
	filename := uuid.NewString()

	parts := strings.Split(req.Image.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	prop.Images = append(prop.Images, url)

	update := map[string]any{
		model.FieldImages:        prop.Images,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: sess.UserID,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, filename)

		return res, fmt.Errorf("failed to update property images: %w", err)
	}

	res.FromModel(prop)

	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) IncrementViews(ctx context.Context, id string) error {
	s.metrics.PropertyViews.Inc()

	return s.incrementCounter(ctx, id, model.FieldViewsCount)
}

func (s *serviceImpl) IncrementInquiries(ctx context.Context, id string) error {
	return s.incrementCounter(ctx, id, model.FieldInquiriesCount)
}

func (s *serviceImpl) IncrementBookings(ctx context.Context, id string) error {
	return s.incrementCounter(ctx, id, model.FieldBookingsCount)
}

func (s *serviceImpl) incrementCounter(ctx context.Context, id, counterField string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".incrementCounter")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.IncrementCounter(ctx, id, counterField); err != nil {
		log.Error().Err(err).Str("counter", counterField).Msg("failed to increment property counter")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete property cache")
		}
	}()

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete property cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
	}()
}
