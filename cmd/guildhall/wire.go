//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/guildhall/internal/config"
	"github.com/cory-johannsen/guildhall/internal/service"
	"github.com/cory-johannsen/guildhall/internal/storage/postgres"
)

var storeSet = wire.NewSet(
	providePool,
	postgres.NewCharacterRepository,
	postgres.NewGuildRepository,
	wire.Bind(new(service.CharacterStore), new(*postgres.CharacterRepository)),
	wire.Bind(new(service.GuildStore), new(*postgres.GuildRepository)),
)

var serviceSet = wire.NewSet(
	provideRules,
	provideRosterCache,
	service.NewCharacterService,
	service.NewGuildService,
)

func initializeApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(
		storeSet,
		serviceSet,
		provideHealthProbe,
		provideHandler,
		provideHTTPService,
		newApp,
	)
	return nil, nil, nil
}

func initializeServices(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Services, func(), error) {
	wire.Build(
		storeSet,
		serviceSet,
		wire.Struct(new(Services), "*"),
	)
	return nil, nil, nil
}
