// Package logging provides structured logging helpers for sheetdrive.
//
// It centralizes slog attribute construction so log entries emitted from
// the drive wrapper carry consistent keys (operation, file_id, status,
// error) and never leak grantee PII: email addresses are hashed before
// they reach a log line.
package logging
