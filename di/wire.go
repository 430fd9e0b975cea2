//go:build wireinject
// +build wireinject

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
	"nyumbani/permissions"
	"nyumbani/shared/cache"
	"nyumbani/transport/http"
	"nyumbani/transport/http/middleware"
	"nyumbani/transport/http/router"

	authService "nyumbani/internal/domains/auth/service"
	bookingRepository "nyumbani/internal/domains/booking/repository"
	bookingService "nyumbani/internal/domains/booking/service"
	performanceRepository "nyumbani/internal/domains/performance/repository"
	performanceService "nyumbani/internal/domains/performance/service"
	propertyRepository "nyumbani/internal/domains/property/repository"
	propertyService "nyumbani/internal/domains/property/service"
	userRepository "nyumbani/internal/domains/user/repository"
	userService "nyumbani/internal/domains/user/service"

	authHandler "nyumbani/internal/handlers/auth"
	bookingHandler "nyumbani/internal/handlers/booking"
	performanceHandler "nyumbani/internal/handlers/performance"
	propertyHandler "nyumbani/internal/handlers/property"
	userHandler "nyumbani/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	permissions.Get,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
	propertyService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var performanceDomain = wire.NewSet(
	performanceRepository.New,
	performanceService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	propertyDomain,
	bookingDomain,
	performanceDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	propertyHandler.New,
	bookingHandler.New,
	performanceHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
