package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"nyumbani/config"
	"nyumbani/infras/kafka"
	"nyumbani/infras/metrics"
	"nyumbani/infras/otel"
	"nyumbani/internal/domains/booking/model"
	"nyumbani/internal/domains/booking/model/dto"
	"nyumbani/internal/domains/booking/repository"
	propertyService "nyumbani/internal/domains/property/service"
	"nyumbani/shared"
	"nyumbani/shared/cache"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/failure"
	"nyumbani/shared/session"
	"nyumbani/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, sess session.Session, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, sess session.Session, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, sess session.Session, id string) (dto.BookingResponse, error)
	Transition(ctx context.Context, sess session.Session, id string, req dto.TransitionRequest) (dto.BookingResponse, error)
	Feedback(ctx context.Context, sess session.Session, id string, req dto.FeedbackRequest) error
}

type serviceImpl struct {
	repo       repository.Booking
	properties propertyService.Property
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	kafka      kafka.Client
	metrics    *metrics.Metrics
}

func New(repo repository.Booking, properties propertyService.Property, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client, metrics *metrics.Metrics) Booking {
	return &serviceImpl{
		repo:       repo,
		properties: properties,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		kafka:      kafka,
		metrics:    metrics,
	}
}

func (s *serviceImpl) Create(ctx context.Context, sess session.Session, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	prop, err := s.properties.Get(ctx, req.PropertyID)
	if err != nil {
		return res, err
	}

	if !prop.IsAvailable {
		return res, failure.UnprocessableEntity("property is no longer available") //nolint:wrapcheck
	}

	booking := req.ToModel(sess.UserID, prop.AdminID)

	if err = s.repo.Insert(ctx, booking); err != nil {
		return res, err
	}

	s.metrics.BookingsCreated.Inc()

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.properties.IncrementInquiries(c, booking.PropertyID); err != nil {
			log.Error().Err(err).Str("propertyID", booking.PropertyID).Msg("failed to bump inquiries counter")
		}

		s.publishEvent(c, dto.NewBookingEvent(dto.EventBookingCreated, booking))

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, sess session.Session, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := s.scopeFilter(sess)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllBooking, sess.UserID), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking requests")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count booking requests")

		return res, fmt.Errorf("failed to count booking requests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking requests")

		return res, fmt.Errorf("failed to get booking requests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking requests to cache")
		}
	}()

	return res, nil
}

// scopeFilter narrows visibility by role: tenants see their own requests,
// admins the ones assigned to them, superadmins everything.
func (s *serviceImpl) scopeFilter(sess session.Session) gDto.FilterGroup {
	if sess.IsSuperAdmin() {
		return gDto.FilterGroup{}
	}

	field := model.FieldTenantID
	if sess.IsAdmin() {
		field = model.FieldAdminID
	}

	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: field, Value: sess.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

func (s *serviceImpl) Get(ctx context.Context, sess session.Session, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeRead(booking, sess); err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.BookingRequest, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking request")

		return booking, fmt.Errorf("failed to get booking request: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking request not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) authorizeRead(booking model.BookingRequest, sess session.Session) error {
	if sess.IsSuperAdmin() {
		return nil
	}

	if booking.TenantID == sess.UserID || booking.AdminID == sess.UserID {
		return nil
	}

	return failure.Forbidden("you do not have access to this booking request") //nolint:wrapcheck
}

// Transition applies a status change after validating it against the
// lifecycle rules and the actor's role. Nothing is written when validation
// fails.
func (s *serviceImpl) Transition(ctx context.Context, sess session.Session, id string, req dto.TransitionRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	trans := req.ToTransition()

	if err = booking.ValidateTransition(trans, sess, timezone.Now()); err != nil {
		return res, err
	}

	update := map[string]any{
		model.FieldStatus:        trans.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: sess.UserID,
	}

	if trans.AdminResponse != "" {
		update[model.FieldAdminResponse] = trans.AdminResponse
	}

	if trans.ScheduledDate != "" {
		update[model.FieldScheduledDate] = trans.ScheduledDate
	}

	if err = s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking request")

		return res, fmt.Errorf("failed to update booking request: %w", err)
	}

	s.metrics.BookingTransitions.WithLabelValues(trans.Status).Inc()

	booking.Status = trans.Status

	if trans.AdminResponse != "" {
		booking.AdminResponse = sql.NullString{String: trans.AdminResponse, Valid: true}
	}

	if trans.ScheduledDate != "" {
		booking.ScheduledDate = sql.NullString{String: trans.ScheduledDate, Valid: true}
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if trans.Status == model.StatusApproved {
			if err := s.properties.IncrementBookings(c, booking.PropertyID); err != nil {
				log.Error().Err(err).Str("propertyID", booking.PropertyID).Msg("failed to bump bookings counter")
			}
		}

		s.publishEvent(c, dto.NewBookingEvent(dto.EventBookingStatusChanged, booking))

		s.invalidate(c, id)
	}()

	return res, nil
}

func (s *serviceImpl) Feedback(ctx context.Context, sess session.Session, id string, req dto.FeedbackRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Feedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = booking.ValidateFeedback(req.Rating, sess); err != nil {
		return err
	}

	update := map[string]any{
		model.FieldFeedbackRating: req.Rating,
		model.FieldFeedbackNote:   req.Comment,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  sess.UserID,
	}

	if err = s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to record feedback")

		return fmt.Errorf("failed to record feedback: %w", err)
	}

	s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event dto.BookingEvent) {
	message := kafka.Message{
		Key:   event.BookingID,
		Value: event,
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
		log.Error().Err(err).Str("event", event.EventType).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}
