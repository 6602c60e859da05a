//go:build wireinject
// +build wireinject

package main

import (
	"Fundoo/config"
	"Fundoo/dao"
	"Fundoo/dao/cache"
	"Fundoo/handler"
	"Fundoo/middleware"
	"Fundoo/pkg/client"
	"Fundoo/pkg/database"
	"Fundoo/pkg/server"
	"Fundoo/scheduler"
	"Fundoo/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		client.NewUserClient,
		wire.Bind(new(service.UserDirectory), new(*client.UserClient)),
		middleware.NewAuthenticator,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,
		scheduler.ProviderSet,

		wire.Struct(new(handler.Note), "*"),
		wire.Struct(new(handler.Label), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil, nil
}
