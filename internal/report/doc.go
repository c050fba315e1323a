// Package report renders the tracker's outputs: per-run CSV exports, PNG
// comment-growth charts, and the static HTML dashboard.
//
// All writers take explicit paths; the caller (the tracker run) owns the
// output layout. Charts are skipped rather than rendered empty when the
// history does not yet span multiple snapshots.
package report
