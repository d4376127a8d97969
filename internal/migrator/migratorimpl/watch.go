package migratorimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// ScheduleWatch sets up a cron job that re-runs the import. Combined with the
// ledger this makes the tool safe to leave running against an archive folder
// that gets refreshed with newer exports.
func (m *MigratorImpl) ScheduleWatch(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create watch scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(m.Config.Migrator.WatchCron, false),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				m.Logger.Info("Context cancelled, stopping watch job")
				return
			}

			m.Logger.Info("Starting scheduled import run")

			runCtx, cancel := context.WithTimeout(ctx, 2*time.Hour)
			defer cancel()

			if _, err := m.Run(runCtx); err != nil {
				m.Logger.Error("Scheduled import run failed", "error", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule import run: %w", err)
	}

	scheduler.Start()
	m.Scheduler = scheduler
	m.Logger.Info("Watch schedule active", "cron", m.Config.Migrator.WatchCron)

	go func() {
		<-ctx.Done()
		m.Logger.Info("Stopping watch scheduler")
		if err := scheduler.Shutdown(); err != nil {
			m.Logger.Error("Failed to shut down watch scheduler", "error", err)
		}
	}()

	return nil
}
