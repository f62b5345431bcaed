package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultSequenceAuditSchedule runs the audit at second 0 of every minute.
const DefaultSequenceAuditSchedule = "0 * * * * *"

const sequenceAuditTimeout = 30 * time.Second

// SequenceGapFinder is the query the audit runs.
type SequenceGapFinder interface {
	Handle(ctx context.Context, query queries.FindSequenceGapsQuery) ([]queries.FindSequenceGapsQueryResponse, error)
}

// SequenceAuditJob periodically checks that every route's stops are numbered 1..N.
// It only reports; repairing a route is left to an operator.
type SequenceAuditJob struct {
	finder   SequenceGapFinder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSequenceAuditJob creates the audit job. An empty schedule means
// DefaultSequenceAuditSchedule. Schedules have a seconds field.
func NewSequenceAuditJob(finder SequenceGapFinder, schedule string, logger *slog.Logger) *SequenceAuditJob {
	if schedule == "" {
		schedule = DefaultSequenceAuditSchedule
	}

	return &SequenceAuditJob{
		finder:   finder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "sequence_audit_job"),
	}
}

// Start schedules the audit.
func (j *SequenceAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sequenceAuditTimeout)
		defer cancel()

		j.Run(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sequence audit job started", "schedule", j.schedule)
	return nil
}

// Run performs one audit and returns the number of broken routes it found.
func (j *SequenceAuditJob) Run(ctx context.Context) int {
	gaps, err := j.finder.Handle(ctx, queries.NewFindSequenceGapsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Sequence audit failed", "error", err)
		return 0
	}

	for _, gap := range gaps {
		j.logger.ErrorContext(ctx, "Route stop sequence is not dense",
			"route_id", gap.RouteID.String(),
			"stops", gap.Stops,
			"min_sequence", gap.MinSequence,
			"max_sequence", gap.MaxSequence,
		)
	}

	if len(gaps) == 0 {
		j.logger.DebugContext(ctx, "Sequence audit passed")
	}

	return len(gaps)
}

// Stop stops the audit job. A run in progress finishes on its own.
func (j *SequenceAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Sequence audit job stopped")
}
