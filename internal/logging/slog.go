package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation    = "operation"
	KeyFileID       = "file_id"
	KeyPermissionID = "permission_id"
	KeyDriveID      = "drive_id"
	KeyStatus       = "status"
	KeyError        = "error"
	KeyAttempt      = "attempt"
	KeyGranteeHash  = "grantee_hash"
	KeyPath         = "path"
	KeyProgressPct  = "progress_pct"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// Operation returns a slog attribute for the remote operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// FileID returns a slog attribute for a Drive file identifier.
func FileID(id string) slog.Attr {
	return slog.String(KeyFileID, id)
}

// PermissionID returns a slog attribute for a permission identifier.
func PermissionID(id string) slog.Attr {
	return slog.String(KeyPermissionID, id)
}

// DriveID returns a slog attribute for a shared-drive identifier.
func DriveID(id string) slog.Attr {
	return slog.String(KeyDriveID, id)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Attempt returns a slog attribute for a retry attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// Path returns a slog attribute for a local filesystem path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// ProgressPct returns a slog attribute for a download progress percentage.
func ProgressPct(pct int) slog.Attr {
	return slog.Int(KeyProgressPct, pct)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted
// from output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail returns a hashed representation of a grantee email for
// logging purposes. This allows correlation of log entries without
// exposing PII.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "grantee:" + hex.EncodeToString(hash[:8])
}

// GranteeHash returns a slog attribute with the anonymized grantee email.
func GranteeHash(email string) slog.Attr {
	return slog.String(KeyGranteeHash, AnonymizeEmail(email))
}
