// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SequenceAuditJob - Looks for routes whose stops are not numbered 1..N and logs each one
// at error level
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(findGapsHandler, cfg.SequenceAuditSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field. The audit defaults to
// "0 * * * * *", once a minute.
//
// # Error Handling
//
// A broken route is a defect in the sequencing code, never an expected state, so each one is
// logged as an error. A failed audit query is logged and retried on the next tick.
package jobs
