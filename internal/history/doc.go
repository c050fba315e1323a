// Package history persists per-run comment-count snapshots in SQLite.
//
// Each tracker run appends one snapshot per discovered post; nothing ever
// rewrites old rows. The store reconstructs per-post time series for the
// growth charts, answers latest-state queries for the dashboard, and exports
// the whole history as the CSV file older tooling consumes.
package history
