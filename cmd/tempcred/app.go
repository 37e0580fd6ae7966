package main

import (
	"context"

	"loginflow/config"
	"loginflow/internal/infra/auth"
	"loginflow/internal/infra/identity"
	logs "loginflow/internal/infra/log"
	"loginflow/internal/infra/metrics"
	"loginflow/internal/infra/persistence/postgres"
	"loginflow/internal/infra/pubsub"
	"loginflow/internal/usecase"
	"loginflow/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// runWithApp starts the dependency graph without the HTTP delivery, runs fn and stops the graph.
func runWithApp(ctx context.Context, fn func(usecase.TemporaryPasswordUsecase) error) error {
	var uc usecase.TemporaryPasswordUsecase

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			func() context.Context { return ctx },
			postgres.New,
			postgres.NewProfileRepository,
			postgres.NewCredentialRepository,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
			auth.NewTemporaryPasswordHasher,
			auth.NewTokenService,
			auth.NewPasswordPolicy,
			impl.NewTemporaryPasswordService,
		),
		metrics.Module,
		identity.Module,
		pubsub.Module,
		fx.Populate(&uc),
	)
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "failed to build application")
	}

	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start application")
	}

	runErr := fn(uc)

	if err := app.Stop(context.Background()); err != nil && runErr == nil {
		return errors.Wrap(err, "failed to stop application")
	}

	return runErr
}
