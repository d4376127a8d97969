package migrator

import "context"

// Summary is the outcome of one import run over the archive.
type Summary struct {
	PostsInArchive int
	PostsMigrated  int // source posts fully handled this run
	TargetsCreated int // destination posts created (splits included)
	PostsSkipped   int // undated, out of window, or already in the ledger
	PostsFailed    int
}

// Client drives the migration: it loads the archive, orders and filters the
// posts, splits each one and uploads the results in emission order.
type Client interface {
	Run(ctx context.Context) (*Summary, error)
	ScheduleWatch(ctx context.Context) error
}
