// Package services provides domain services for route stop sequencing.
//
// The package includes:
//   - SequencePlanner: computes which stops change sequence, and to what, when a stop is
//     inserted, moved or removed
//
// The planner does no I/O. Command handlers read the affected window of a route through the
// stop repository, hand it to the planner and write the resulting plan back in the same
// unit of work.
package services
