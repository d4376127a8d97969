package migratorimpl

import (
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/archive"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/bluesky"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/migrator"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/notifier"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/repositories/uploadedpost"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/splitter"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/config"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

type Opts struct {
	fx.In

	Archive  archive.Reader
	Splitter splitter.Client
	Bluesky  bluesky.Client
	Ledger   uploadedpost.Repository
	Notifier notifier.Client
	Logger   logger.Logger
	Config   *config.Config
}

type MigratorImpl struct {
	Archive   archive.Reader
	Splitter  splitter.Client
	Bluesky   bluesky.Client
	Ledger    uploadedpost.Repository
	Notifier  notifier.Client
	Logger    logger.Logger
	Config    *config.Config
	Scheduler gocron.Scheduler
}

func New(opts Opts) *MigratorImpl {
	return &MigratorImpl{
		Archive:  opts.Archive,
		Splitter: opts.Splitter,
		Bluesky:  opts.Bluesky,
		Ledger:   opts.Ledger,
		Notifier: opts.Notifier,
		Logger:   opts.Logger.WithComponent("Migrator"),
		Config:   opts.Config,
	}
}

var _ migrator.Client = (*MigratorImpl)(nil)
