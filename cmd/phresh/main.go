package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"phresh/config"
	"phresh/internal/delivery"
	"phresh/internal/delivery/api"
	"phresh/internal/delivery/api/middleware"
	"phresh/internal/delivery/api/router/handler"
	"phresh/internal/infra/auth"
	logs "phresh/internal/infra/log"
	"phresh/internal/infra/persistence/memory"
	"phresh/internal/infra/persistence/postgres"
	"phresh/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		injectInfra(cfg),
		injectRepo(cfg.Storage.Driver),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			logs.New,
			context.Background,
		),
	)
}

// injectRepo selects the persistence backend named by storage.driver.
func injectRepo(driver string) fx.Option {
	if driver == config.StorageDriverMemory {
		return fx.Provide(
			memory.NewStore,
			memory.NewUserRepository,
			memory.NewProfileRepository,
			memory.NewCleaningRepository,
			memory.NewOfferRepository,
			memory.NewTransactionManager,
		)
	}

	return fx.Provide(
		postgres.New,
		postgres.NewUserRepository,
		postgres.NewProfileRepository,
		postgres.NewCleaningRepository,
		postgres.NewOfferRepository,
		postgres.NewTransactionManager,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewCredentialHasher,
		auth.NewJWTService,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewUserService,
		impl.NewAuthService,
		impl.NewProfileService,
		impl.NewCleaningService,
		impl.NewOfferService,
	)
}

func injectMiddleware() fx.Option {
	return fx.Provide(
		middleware.NewAuthMiddleware,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewUserHandler,
		handler.NewProfileHandler,
		handler.NewCleaningHandler,
		handler.NewOfferHandler,
		handler.NewTestHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			api.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
