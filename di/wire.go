//go:build wireinject
// +build wireinject

package di

import (
	"slotbook/config"
	"slotbook/infras/kafka"
	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	"slotbook/infras/redis"
	"slotbook/internal/events"
	healthHandler "slotbook/internal/handlers/health"
	reservationHandler "slotbook/internal/handlers/reservation"
	"slotbook/shared/cache"
	"slotbook/transport/http"
	"slotbook/transport/http/middleware"
	"slotbook/transport/http/router"

	reservationRepository "slotbook/internal/domains/reservation/repository"
	reservationService "slotbook/internal/domains/reservation/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventing = wire.NewSet(
	events.NewHub,
	events.NewNotifier,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		eventing,
		reservationDomain,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
