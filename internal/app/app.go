package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/archive"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/archive/archiveimpl"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/bluesky"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/bluesky/blueskyimpl"
	_ "github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/migrations"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/migrator"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/migrator/migratorimpl"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/notifier"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/notifier/notifierimpl"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/pgx"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/probe"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/probe/probeimpl"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/processor"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/processor/processorimpl"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/repositories/uploadedpost"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/splitter"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/splitter/splitterimpl"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/textcodec"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/config"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		textcodec.New,
	),
	fx.Provide(
		fx.Annotate(
			probeimpl.NewImageProbe,
			fx.As(new(probe.ImageMeta)),
		),
		fx.Annotate(
			probeimpl.NewVideoProbe,
			fx.As(new(probe.VideoMeta)),
		),
		fx.Annotate(
			processorimpl.NewImage,
			fx.As(new(processor.Image)),
		),
		fx.Annotate(
			processorimpl.NewVideo,
			fx.As(new(processor.Video)),
		),
		fx.Annotate(
			archiveimpl.New,
			fx.As(new(archive.Reader)),
		),
		fx.Annotate(
			splitterimpl.New,
			fx.As(new(splitter.Client)),
		),
		fx.Annotate(
			blueskyimpl.New,
			fx.As(new(bluesky.Client)),
		),
		notifierimpl.New,
		fx.Annotate(
			migratorimpl.New,
			fx.As(new(migrator.Client)),
		),
	),
	uploadedpost.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

// migrate applies the ledger schema when a database is configured. The
// migrations are compiled in, so no migration files ship with the binary.
func migrate(c *config.Config, log logger.Logger) error {
	if !c.PostgresEnabled() {
		log.Info("No database configured, skipping migrations")
		return nil
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	return goose.Up(db, ".")
}

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, log logger.Logger, cfg *config.Config,
	bskyClient bluesky.Client, mClient migrator.Client, nClient notifier.Client) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)

			ctx := context.Background()
			if err := bskyClient.Login(ctx); err != nil {
				log.Error("Bluesky login error", "Error", err)
				nClient.Notify("Bluesky login error: " + err.Error())
				return err
			}

			go func() {
				if _, err := mClient.Run(ctx); err != nil {
					log.Error("Import run error", "Error", err)
					nClient.Notify("Import run error: " + err.Error())
				}

				if cfg.Migrator.WatchCron == "" {
					if err := shutdowner.Shutdown(); err != nil {
						log.Error("Shutdown error", "Error", err)
					}
					return
				}

				if err := mClient.ScheduleWatch(ctx); err != nil {
					log.Error("Watch schedule error", "Error", err)
					nClient.Notify("Watch schedule error: " + err.Error())
				}
			}()

			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start: %v", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Info("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
