package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nyumbani/config"
	"nyumbani/infras/metrics"
	"nyumbani/infras/otel/mocks"
	bookingMocks "nyumbani/internal/domains/booking/mocks"
	"nyumbani/internal/domains/booking/model"
	"nyumbani/internal/domains/booking/model/dto"
	"nyumbani/internal/domains/booking/service"
	propertyDto "nyumbani/internal/domains/property/model/dto"
	propertySvcMocks "nyumbani/internal/domains/property/service/mocks"
	cacheMocks "nyumbani/shared/cache/mocks"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/session"

	kafkaMocks "nyumbani/infras/kafka/mocks"
)

// Counters register once on the default registry, so every test shares one
// instance.
var testMetrics = metrics.New()

var (
	tenantSess = session.Session{UserID: "tenant-1", Role: constant.RoleTenant}
	adminSess  = session.Session{UserID: "admin-1", Role: constant.RoleAdmin}
)

type fixture struct {
	svc        service.Booking
	repo       *bookingMocks.MockBooking
	properties *propertySvcMocks.MockProperty
	cache      *cacheMocks.MockRedisCache
	kafka      *kafkaMocks.MockClient
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	properties := propertySvcMocks.NewMockProperty(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	// The service fires counter bumps, events and cache invalidation from
	// goroutines; those may or may not land before the test finishes.
	properties.EXPECT().IncrementInquiries(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	properties.EXPECT().IncrementBookings(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(repo, properties, cfg, mockCache, mocks.NewOtel(), mockKafka, testMetrics)

	return fixture{
		svc:        svc,
		repo:       repo,
		properties: properties,
		cache:      mockCache,
		kafka:      mockKafka,
	}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		PropertyID:    "b2f7c3de-8f4a-4c8b-9a6f-1f2e3d4c5b6a",
		TenantName:    "Asha Mushi",
		TenantPhone:   "0712345678",
		TenantEmail:   "asha@example.com",
		PreferredDate: "2026-09-15",
		PreferredTime: "10:00",
		Message:       "Keen to view this weekend",
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("creates a pending request against an available property", func(t *testing.T) {
		f := newFixture(t)

		f.properties.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(propertyDto.PropertyResponse{ID: "property-1", AdminID: "admin-1", IsAvailable: true}, nil)

		var inserted model.BookingRequest
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.BookingRequest) error {
				inserted = mod

				return nil
			})

		res, err := f.svc.Create(context.Background(), tenantSess, createRequest())

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, model.StatusPending, inserted.Status)
		assert.Equal(t, "tenant-1", inserted.TenantID)
		assert.Equal(t, "admin-1", inserted.AdminID)
	})

	t.Run("rejects unavailable properties", func(t *testing.T) {
		f := newFixture(t)

		f.properties.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(propertyDto.PropertyResponse{ID: "property-1", AdminID: "admin-1", IsAvailable: false}, nil)

		_, err := f.svc.Create(context.Background(), tenantSess, createRequest())

		assert.Error(t, err)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		f := newFixture(t)

		f.properties.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(propertyDto.PropertyResponse{ID: "property-1", AdminID: "admin-1", IsAvailable: true}, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := f.svc.Create(context.Background(), tenantSess, createRequest())

		assert.Error(t, err)
	})
}

func TestBookingService_GetAll(t *testing.T) {
	t.Run("tenant sees only their own requests", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.Len(t, filter.Filters, 1)

				flt, ok := filter.Filters[0].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, model.FieldTenantID, flt.Field)
				assert.Equal(t, "tenant-1", flt.Value)

				return 1, nil
			})

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingRequest{{ID: "booking-1", TenantID: "tenant-1", Status: model.StatusPending}}, nil)

		res, err := f.svc.GetAll(context.Background(), tenantSess, gDto.QueryParams{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Len(t, res.Bookings, 1)
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("admin scope filters on admin_id", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				flt, ok := filter.Filters[0].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, model.FieldAdminID, flt.Field)

				return 0, nil
			})

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingRequest{}, nil)

		_, err := f.svc.GetAll(context.Background(), adminSess, gDto.QueryParams{Page: 1, Limit: 10})

		assert.NoError(t, err)
	})
}

func TestBookingService_Transition(t *testing.T) {
	t.Run("assigned admin approves a pending request", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingRequest{
				ID:       "booking-1",
				TenantID: "tenant-1",
				AdminID:  "admin-1",
				Status:   model.StatusPending,
			}, nil)

		var update map[string]any
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				update = req

				return nil
			})

		res, err := f.svc.Transition(context.Background(), adminSess, "booking-1", dto.TransitionRequest{
			Status:        model.StatusApproved,
			ScheduledDate: "2026-09-20",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusApproved, res.Status)
		assert.Equal(t, "2026-09-20", res.ScheduledDate)
		assert.Equal(t, model.StatusApproved, update[model.FieldStatus])
		assert.Equal(t, "2026-09-20", update[model.FieldScheduledDate])
	})

	t.Run("decline response echoes the admin message", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingRequest{
				ID:       "booking-1",
				TenantID: "tenant-1",
				AdminID:  "admin-1",
				Status:   model.StatusPending,
			}, nil)

		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Transition(context.Background(), adminSess, "booking-1", dto.TransitionRequest{
			Status:        model.StatusDeclined,
			AdminResponse: "property is under maintenance this month",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusDeclined, res.Status)
		assert.Equal(t, "property is under maintenance this month", res.AdminResponse)
	})

	t.Run("invalid transitions write nothing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingRequest{
				ID:       "booking-1",
				TenantID: "tenant-1",
				AdminID:  "admin-1",
				Status:   model.StatusCancelled,
			}, nil)

		// No Update expectation: a terminal request must not be touched.
		_, err := f.svc.Transition(context.Background(), adminSess, "booking-1", dto.TransitionRequest{
			Status:        model.StatusApproved,
			ScheduledDate: "2026-09-20",
		})

		assert.Error(t, err)
	})

	t.Run("missing request yields not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingRequest{}, nil)

		_, err := f.svc.Transition(context.Background(), adminSess, "booking-9", dto.TransitionRequest{
			Status: model.StatusCancelled,
		})

		assert.Error(t, err)
	})
}

func TestBookingService_Feedback(t *testing.T) {
	t.Run("tenant rates a completed viewing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingRequest{
				ID:       "booking-1",
				TenantID: "tenant-1",
				AdminID:  "admin-1",
				Status:   model.StatusCompleted,
				ScheduledDate: sql.NullString{
					String: "2026-08-01",
					Valid:  true,
				},
			}, nil)

		var update map[string]any
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				update = req

				return nil
			})

		err := f.svc.Feedback(context.Background(), tenantSess, "booking-1", dto.FeedbackRequest{
			Rating:  5,
			Comment: "Great viewing",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, update[model.FieldFeedbackRating])
		assert.Equal(t, "Great viewing", update[model.FieldFeedbackNote])
	})

	t.Run("feedback on a pending request is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingRequest{
				ID:       "booking-1",
				TenantID: "tenant-1",
				AdminID:  "admin-1",
				Status:   model.StatusPending,
			}, nil)

		err := f.svc.Feedback(context.Background(), tenantSess, "booking-1", dto.FeedbackRequest{Rating: 4})

		assert.Error(t, err)
	})
}
