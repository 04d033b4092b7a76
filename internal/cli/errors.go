// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Directory errors
	ErrArchiveDirNotFound  = "ARCHIVE_DIR_NOT_FOUND"
	ErrIncomingDirNotFound = "INCOMING_DIR_NOT_FOUND"

	// Rename errors
	ErrRenameFailed   = "RENAME_FAILED"
	ErrRollbackFailed = "ROLLBACK_FAILED"
	ErrManifestEmpty  = "MANIFEST_EMPTY"

	// Capture errors
	ErrCaptureFailed = "CAPTURE_FAILED"

	// URL list errors
	ErrURLListInvalid = "URL_LIST_INVALID"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnFallbackName  = "FALLBACK_NAME"
	WarnCaptureRetry  = "CAPTURE_RETRY"
	WarnSkippedRecord = "SKIPPED_RECORD"
)
