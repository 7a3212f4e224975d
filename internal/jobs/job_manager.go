package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled jobs of the fulfillment service.
type JobManager struct {
	purgeJob *PurgeDeletedDocumentsJob
}

// NewJobManager creates a job manager with all background jobs wired to
// their command handlers.
func NewJobManager(
	purgeHandler commands.PurgeDeletedDocumentsCommandHandler,
	purgeRetention time.Duration,
	purgeSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		purgeJob: NewPurgeDeletedDocumentsJob(purgeHandler, purgeRetention, purgeSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.purgeJob.Start(); err != nil {
		return fmt.Errorf("failed to start purge job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.purgeJob.Stop()
}
