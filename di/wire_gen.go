// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"nyumbani/config"
	"nyumbani/infras/jwt"
	"nyumbani/infras/kafka"
	"nyumbani/infras/metrics"
	"nyumbani/infras/otel"
	"nyumbani/infras/postgres"
	"nyumbani/infras/redis"
	"nyumbani/infras/s3"
	"nyumbani/internal/domains/auth/service"
	repository3 "nyumbani/internal/domains/booking/repository"
	service3 "nyumbani/internal/domains/booking/service"
	repository4 "nyumbani/internal/domains/performance/repository"
	service4 "nyumbani/internal/domains/performance/service"
	repository2 "nyumbani/internal/domains/property/repository"
	service2 "nyumbani/internal/domains/property/service"
	"nyumbani/internal/domains/user/repository"
	service5 "nyumbani/internal/domains/user/service"
	"nyumbani/internal/handlers/auth"
	"nyumbani/internal/handlers/booking"
	"nyumbani/internal/handlers/performance"
	"nyumbani/internal/handlers/property"
	"nyumbani/internal/handlers/user"
	"nyumbani/permissions"
	"nyumbani/shared/cache"
	"nyumbani/transport/http"
	"nyumbani/transport/http/middleware"
	"nyumbani/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	repositoryProperty := repository2.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	metricsMetrics := metrics.New()
	serviceProperty := service2.New(repositoryProperty, configConfig, redisCache, otelOtel, s3S3, metricsMetrics)
	propertyHandler := property.New(serviceProperty, otelOtel)
	repositoryBooking := repository3.New(connection, otelOtel)
	kafkaClient := kafka.New(configConfig, otelOtel)
	serviceBooking := service3.New(repositoryBooking, serviceProperty, configConfig, redisCache, otelOtel, kafkaClient, metricsMetrics)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	repositoryPerformance := repository4.New(connection, otelOtel)
	servicePerformance := service4.New(repositoryPerformance, configConfig, redisCache, otelOtel)
	performanceHandler := performance.New(servicePerformance, otelOtel)
	serviceUser := service5.New(repositoryUser, configConfig, redisCache, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:        handler,
		Property:    propertyHandler,
		Booking:     bookingHandler,
		Performance: performanceHandler,
		User:        userHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache, metricsMetrics)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, s3.New, kafka.New, metrics.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware, permissions.Get)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var authDomain = wire.NewSet(service.New)

var userDomain = wire.NewSet(repository.New, service5.New)

var propertyDomain = wire.NewSet(repository2.New, service2.New)

var bookingDomain = wire.NewSet(repository3.New, service3.New)

var performanceDomain = wire.NewSet(repository4.New, service4.New)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	propertyDomain,
	bookingDomain,
	performanceDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, property.New, booking.New, performance.New, user.New, router.New)
