//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"leedz/config"
	"leedz/infras/otel"
	"leedz/infras/postgres"
	"leedz/infras/redis"
	"leedz/shared/cache"
	"leedz/transport/http"
	"leedz/transport/http/middleware"
	"leedz/transport/http/router"

	bookingRepository "leedz/internal/domains/booking/repository"
	bookingService "leedz/internal/domains/booking/service"
	clientRepository "leedz/internal/domains/client/repository"
	clientService "leedz/internal/domains/client/service"
	recordService "leedz/internal/domains/record/service"
	settingsRepository "leedz/internal/domains/settings/repository"
	settingsService "leedz/internal/domains/settings/service"

	bookingHandler "leedz/internal/handlers/booking"
	clientHandler "leedz/internal/handlers/client"
	recordHandler "leedz/internal/handlers/record"
	settingsHandler "leedz/internal/handlers/settings"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var clientDomain = wire.NewSet(
	clientRepository.New,
	clientService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var settingsDomain = wire.NewSet(
	settingsRepository.New,
	settingsService.New,
)

var recordDomain = wire.NewSet(
	recordService.New,
)

var domains = wire.NewSet(
	clientDomain,
	bookingDomain,
	settingsDomain,
	recordDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	recordHandler.New,
	clientHandler.New,
	bookingHandler.New,
	settingsHandler.New,
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
