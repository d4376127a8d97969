package uploadedpost

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

var Module = fx.Module("uploadedpost_repository",
	fx.Provide(
		fx.Annotate(
			// A nil pool means Postgres is not configured; fall back to
			// the in-process ledger.
			func(pool *pgxpool.Pool, log logger.Logger) Repository {
				if pool == nil {
					log.Info("No database configured, using in-memory upload ledger")
					return NewMemory()
				}
				return NewPgx(pool, log)
			},
			fx.As(new(Repository)),
		),
	),
)
