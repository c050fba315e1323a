// Package logging builds slog loggers for the tracker CLI.
//
// The console format emits compact timestamped key=value lines suitable for
// cron mail and terminals; the json format mirrors the same records for log
// shippers. Every record is duplicated into the per-show log file so a
// scheduled run leaves an inspectable trail.
package logging
