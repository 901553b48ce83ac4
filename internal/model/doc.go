// Package model defines the data structures shared across the mirroring
// pipeline: asset references, per-file documents, and run reports.
//
// All structures are constructed fresh per invocation and discarded at
// process exit; the only persistent state is the filesystem and the
// optional run-history database.
package model
