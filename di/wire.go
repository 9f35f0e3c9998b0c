//go:build wireinject
// +build wireinject

package di

import (
	"turfbook/config"
	"turfbook/infras/jwt"
	"turfbook/infras/kafka"
	"turfbook/infras/otel"
	"turfbook/infras/postgres"
	"turfbook/infras/redis"
	"turfbook/infras/s3"
	"turfbook/permissions"
	"turfbook/shared/cache"
	"turfbook/transport/http"
	"turfbook/transport/http/middleware"
	"turfbook/transport/http/router"
	"turfbook/transport/worker"

	bookingRepository "turfbook/internal/domains/booking/repository"
	bookingService "turfbook/internal/domains/booking/service"
	slotRepository "turfbook/internal/domains/slot/repository"
	slotService "turfbook/internal/domains/slot/service"
	turfRepository "turfbook/internal/domains/turf/repository"
	turfService "turfbook/internal/domains/turf/service"
	bookingHandler "turfbook/internal/handlers/booking"
	slotHandler "turfbook/internal/handlers/slot"
	turfHandler "turfbook/internal/handlers/turf"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var turfDomain = wire.NewSet(
	turfRepository.New,
	turfService.New,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewIntent,
	bookingService.New,
)

var domains = wire.NewSet(
	turfDomain,
	slotDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	turfHandler.New,
	slotHandler.New,
	bookingHandler.New,
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

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		turfRepository.New,
		slotDomain,
		bookingDomain,
		worker.New,
	)

	return &worker.Worker{}
}
