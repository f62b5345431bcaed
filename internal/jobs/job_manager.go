package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sequenceAuditJob *SequenceAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	gapFinder SequenceGapFinder,
	auditSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sequenceAuditJob: NewSequenceAuditJob(gapFinder, auditSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sequenceAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start sequence audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sequenceAuditJob.Stop()
}
