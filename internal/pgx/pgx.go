package pgx

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/config"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

// New builds the pgx pool for the upload ledger. The database is optional:
// without POSTGRES_HOST the pool is nil and consumers fall back to the
// in-memory ledger.
func New(opts Opts) (*pgxpool.Pool, error) {
	if !opts.Config.PostgresEnabled() {
		return nil, nil
	}

	pool, err := pgxpool.New(context.Background(), opts.Config.GetDSN())
	if err != nil {
		return nil, err
	}

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := pool.Ping(ctx); err != nil {
					return err
				}

				opts.Logger.Info("Connected to postgres")
				return nil
			},
			OnStop: func(ctx context.Context) error {
				pool.Close()
				return nil
			},
		},
	)

	return pool, nil
}
