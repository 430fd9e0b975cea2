package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nyumbani/config"
	"nyumbani/infras/metrics"
	"nyumbani/infras/otel/mocks"
	s3Mocks "nyumbani/infras/s3/mocks"
	propertyMocks "nyumbani/internal/domains/property/mocks"
	"nyumbani/internal/domains/property/model"
	"nyumbani/internal/domains/property/model/dto"
	"nyumbani/internal/domains/property/search"
	"nyumbani/internal/domains/property/service"
	cacheMocks "nyumbani/shared/cache/mocks"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/session"
)

// Counters register once on the default registry, so every test shares one
// instance.
var testMetrics = metrics.New()

var (
	tenantSess = session.Session{UserID: "tenant-1", Role: constant.RoleTenant}
	adminSess  = session.Session{UserID: "admin-1", Role: constant.RoleAdmin}
	superSess  = session.Session{UserID: "super-1", Role: constant.RoleSuperAdmin}
)

type fixture struct {
	svc   service.Property
	repo  *propertyMocks.MockProperty
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := propertyMocks.NewMockProperty(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidation run on goroutines after the response is
	// built; whether they land before the test ends is timing-dependent.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		svc:   service.New(repo, cfg, mockCache, mocks.NewOtel(), mockS3, testMetrics),
		repo:  repo,
		cache: mockCache,
		s3:    mockS3,
	}
}

func managedProperty() model.Property {
	serviceFee, total := model.CalculateFees(800000)

	return model.Property{
		ID:               "property-1",
		AdminID:          "admin-1",
		Title:            "Sinza Apartment",
		PropertyType:     "apartment",
		Bedrooms:         2,
		Bathrooms:        1,
		RentAmount:       800000,
		ServiceFeeAmount: serviceFee,
		TotalAmount:      total,
		City:             "Dar es Salaam",
		IsAvailable:      true,
	}
}

func TestPropertyService_Create(t *testing.T) {
	request := dto.CreatePropertyRequest{
		Title:        "Sinza Apartment",
		PropertyType: "apartment",
		Bedrooms:     2,
		RentAmount:   800000,
		City:         "Dar es Salaam",
	}

	t.Run("admin creates a listing with derived fees", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.Property) error {
				assert.Equal(t, "admin-1", mod.AdminID)
				assert.InDelta(t, 160000, mod.ServiceFeeAmount, 1e-9)
				assert.InDelta(t, 960000, mod.TotalAmount, 1e-9)

				return nil
			})

		res, err := f.svc.Create(context.Background(), adminSess, request)

		assert.NoError(t, err)
		assert.InDelta(t, 160000, res.ServiceFeeAmount, 1e-9)
		assert.InDelta(t, 960000, res.TotalAmount, 1e-9)
	})

	t.Run("tenants cannot create listings", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), tenantSess, request)

		assert.Error(t, err)
	})
}

func TestPropertyService_Update(t *testing.T) {
	t.Run("changing the rent recomputes fee and total", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(managedProperty(), nil)

		newRent := float64(1000000)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				assert.InDelta(t, 200000, req[model.FieldServiceFee].(float64), 1e-9)
				assert.InDelta(t, 1200000, req[model.FieldTotalAmount].(float64), 1e-9)

				return nil
			})

		err := f.svc.Update(context.Background(), adminSess, dto.UpdatePropertyRequest{RentAmount: &newRent}, "property-1")

		assert.NoError(t, err)
	})

	t.Run("fee columns stay untouched when the rent does not change", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(managedProperty(), nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				_, hasFee := req[model.FieldServiceFee]
				assert.False(t, hasFee)

				return nil
			})

		err := f.svc.Update(context.Background(), adminSess, dto.UpdatePropertyRequest{Title: "Sinza Apartment, renovated"}, "property-1")

		assert.NoError(t, err)
	})

	t.Run("another admin's listing cannot be updated", func(t *testing.T) {
		f := newFixture(t)

		prop := managedProperty()
		prop.AdminID = "admin-2"
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(prop, nil)

		err := f.svc.Update(context.Background(), adminSess, dto.UpdatePropertyRequest{Title: "hijacked"}, "property-1")

		assert.Error(t, err)
	})

	t.Run("superadmin may update any listing", func(t *testing.T) {
		f := newFixture(t)

		prop := managedProperty()
		prop.AdminID = "admin-2"
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(prop, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Update(context.Background(), superSess, dto.UpdatePropertyRequest{Title: "Corrected title"}, "property-1")

		assert.NoError(t, err)
	})

	t.Run("missing listing yields not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)

		err := f.svc.Update(context.Background(), adminSess, dto.UpdatePropertyRequest{Title: "anything"}, "missing")

		assert.Error(t, err)
	})
}

func TestPropertyService_Get(t *testing.T) {
	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(managedProperty(), nil)

		res, err := f.svc.Get(context.Background(), "property-1")

		assert.NoError(t, err)
		assert.Equal(t, "property-1", res.ID)
	})

	t.Run("missing listing yields not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestPropertyService_Retire(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, false, req[model.FieldIsAvailable])

			return nil
		})

	assert.NoError(t, f.svc.Retire(context.Background(), adminSess, "property-1"))
}

func TestPropertyService_Search(t *testing.T) {
	candidates := func() []model.Property {
		out := make([]model.Property, 0, 20)

		for i := 0; i < 20; i++ {
			prop := managedProperty()
			prop.ID = fmt.Sprintf("property-%d", i)
			prop.Title = fmt.Sprintf("Listing %d", i)
			prop.RentAmount = float64(500000 + i*10000)
			out = append(out, prop)
		}

		return out
	}

	t.Run("loads only available listings and pages the matches", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Property, error) {
				flt, ok := filter.Filters[0].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, model.FieldIsAvailable, flt.Field)
				assert.Equal(t, true, flt.Value)

				return candidates(), nil
			})

		res, err := f.svc.Search(context.Background(), dto.SearchPropertiesRequest{})

		assert.NoError(t, err)
		assert.Equal(t, 20, res.Total)
		assert.Len(t, res.Properties, search.SearchPageSize)
		assert.True(t, res.HasMore)
	})

	t.Run("browse mode uses the wider page", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(candidates(), nil)

		res, err := f.svc.Search(context.Background(), dto.SearchPropertiesRequest{Browse: true})

		assert.NoError(t, err)
		assert.Len(t, res.Properties, search.BrowsePageSize)
	})

	t.Run("criteria narrow the candidate set", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(candidates(), nil)

		res, err := f.svc.Search(context.Background(), dto.SearchPropertiesRequest{MinPrice: 650000})

		assert.NoError(t, err)
		assert.Equal(t, 5, res.Total)
		assert.False(t, res.HasMore)
	})

	t.Run("repository failures surface", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

		_, err := f.svc.Search(context.Background(), dto.SearchPropertiesRequest{})

		assert.Error(t, err)
	})

	t.Run("interleaved searches each answer their own query", func(t *testing.T) {
		f := newFixture(t)

		beach := managedProperty()
		beach.ID = "property-beach"
		beach.Title = "Beach House"

		studio := managedProperty()
		studio.ID = "property-studio"
		studio.Title = "City Studio"

		rows := []model.Property{beach, studio}

		slowLoadEntered := make(chan struct{})
		release := make(chan struct{})

		// The first search is held at the candidate load until a second
		// search has fully completed, so its publish carries a superseded
		// token.
		gomock.InOrder(
			f.repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Property, error) {
					close(slowLoadEntered)
					<-release

					return rows, nil
				}),
			f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil),
		)

		type result struct {
			res dto.SearchPropertiesResponse
			err error
		}

		slow := make(chan result, 1)

		go func() {
			res, err := f.svc.Search(context.Background(), dto.SearchPropertiesRequest{Query: "beach"})
			slow <- result{res: res, err: err}
		}()

		<-slowLoadEntered

		fresh, err := f.svc.Search(context.Background(), dto.SearchPropertiesRequest{Query: "studio"})

		assert.NoError(t, err)
		assert.Len(t, fresh.Properties, 1)
		assert.Equal(t, "City Studio", fresh.Properties[0].Title)

		close(release)

		got := <-slow

		assert.NoError(t, got.err)
		assert.Len(t, got.res.Properties, 1)
		assert.Equal(t, "Beach House", got.res.Properties[0].Title)
	})
}

func TestPropertyService_AssignAdminBulk(t *testing.T) {
	request := dto.AssignAdminBulkRequest{
		PropertyIDs: []string{"property-1", "property-2"},
		AdminID:     "admin-2",
	}

	t.Run("superadmin reassigns listings in bulk", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			AssignAdminBulk(gomock.Any(), request.PropertyIDs, "admin-2", "super-1").
			Return(nil)

		assert.NoError(t, f.svc.AssignAdminBulk(context.Background(), superSess, request))
	})

	t.Run("admins cannot reassign listings", func(t *testing.T) {
		f := newFixture(t)

		assert.Error(t, f.svc.AssignAdminBulk(context.Background(), adminSess, request))
	})
}

func TestPropertyService_IncrementViews(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().IncrementCounter(gomock.Any(), "property-1", model.FieldViewsCount).Return(nil)

	assert.NoError(t, f.svc.IncrementViews(context.Background(), "property-1"))
}
