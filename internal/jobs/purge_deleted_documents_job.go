package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PurgeDeletedDocumentsJob removes soft-deleted documents past the
// retention window. Runs nightly so tombstones stay queryable for audit
// during the window and disappear afterwards.
type PurgeDeletedDocumentsJob struct {
	handler   commands.PurgeDeletedDocumentsCommandHandler
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPurgeDeletedDocumentsJob creates the nightly purge job with the
// given retention window and cron schedule (six-field, with seconds).
func NewPurgeDeletedDocumentsJob(
	handler commands.PurgeDeletedDocumentsCommandHandler,
	retention time.Duration,
	schedule string,
	logger *slog.Logger,
) *PurgeDeletedDocumentsJob {
	return &PurgeDeletedDocumentsJob{
		handler:   handler,
		retention: retention,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "purge_deleted_documents_job"),
	}
}

// Start schedules the purge job.
func (j *PurgeDeletedDocumentsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewPurgeDeletedDocumentsCommand(j.retention)
		if err != nil {
			j.logger.ErrorContext(ctx, "Purge job misconfigured", "error", err)
			return
		}

		purged, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Purge job failed", "error", err)
			return
		}
		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged soft-deleted documents", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Purge job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Stop stops the purge job.
func (j *PurgeDeletedDocumentsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Purge job stopped")
}
