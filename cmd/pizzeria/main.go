package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"pizzeria/config"
	"pizzeria/internal/bot"
	"pizzeria/internal/delivery"
	"pizzeria/internal/delivery/http"
	"pizzeria/internal/delivery/http/router/handler"
	"pizzeria/internal/domain/service"
	"pizzeria/internal/infra/mq"
	"pizzeria/internal/infra/persistence/postgres"
	"pizzeria/internal/infra/viacep"
	"pizzeria/internal/usecase"
	"pizzeria/internal/usecase/impl"

	logs "pizzeria/internal/infra/log"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectBot(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			prepareSchema,
			startSessionSweeper,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			// Per-operation repositories are obtained through the
			// transaction manager's factory, bound to the running tx.
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			viacep.New,
			mq.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCustomerService,
			impl.NewCatalogService,
			impl.NewOrderService,
		),
	)
}

func injectBot() fx.Option {
	return fx.Options(
		fx.Provide(
			bot.NewRegistry,
			newDispatcher,
		),
	)
}

// newDispatcher unpacks the bot policy knobs from the root config.
func newDispatcher(
	registry *bot.Registry,
	customerUC usecase.CustomerUsecase,
	catalogUC usecase.CatalogUsecase,
	orderUC usecase.OrderUsecase,
	postal service.PostalCodeService,
	cfg *config.Config,
	logger *slog.Logger,
) *bot.Dispatcher {
	return bot.NewDispatcher(registry, customerUC, catalogUC, orderUC, postal, cfg.Bot, logger)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewWebhookHandler,
			handler.NewOrderHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// prepareSchema migrates and seeds the catalog before anything serves.
func prepareSchema(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	if err := postgres.Migrate(db); err != nil {
		return err
	}

	return postgres.SeedIfEmpty(ctx, db, logger)
}

type sweeperParams struct {
	fx.In
	fx.Lifecycle

	Config   *config.Config
	Registry *bot.Registry
	Logger   *slog.Logger
}

// startSessionSweeper evicts idle dialogue sessions in the background.
func startSessionSweeper(params sweeperParams) {
	maxIdle := params.Config.Bot.SessionIdleTimeout
	if maxIdle <= 0 {
		return
	}

	done := make(chan struct{})

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(maxIdle / 2)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						if evicted := params.Registry.Sweep(maxIdle); evicted > 0 {
							params.Logger.Debug("Swept idle sessions", "count", evicted)
						}
					}
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			close(done)

			return nil
		},
	})
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
