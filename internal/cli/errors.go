package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Project errors
	ErrProjectNotFound = "PROJECT_NOT_FOUND"
	ErrConfigInvalid   = "CONFIG_INVALID"
	ErrManifestInvalid = "MANIFEST_INVALID"

	// File errors
	ErrFileNotInProject   = "FILE_NOT_IN_PROJECT"
	ErrFileExists         = "FILE_EXISTS"
	ErrFileOutsideProject = "FILE_OUTSIDE_PROJECT"
	ErrRefAmbiguous       = "REF_AMBIGUOUS"
	ErrKindUnknown        = "KIND_UNKNOWN"

	// Rename errors
	ErrRenameFailed = "RENAME_FAILED"
	ErrRulesInvalid = "RULES_INVALID"

	// Report errors
	ErrReportWriteFailed = "REPORT_WRITE_FAILED"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues raised by the CLI itself.
// Rename-level warning codes live in the report package.
const (
	WarnVCSUnavailable = "VCS_UNAVAILABLE"
)
