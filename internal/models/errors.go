package models

import "errors"

// Error constants for contact import operations
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrContactNotFound     = errors.New("contact not found")
	ErrRegionNotFound      = errors.New("region not found")
	ErrConfigNotFound      = errors.New("import config not found")
	ErrConfigNameExists    = errors.New("import config name already exists")
	ErrPresetReadOnly      = errors.New("preset import configs are read-only")
	ErrInvalidImportConfig = errors.New("invalid import config")
	ErrScopeNotPermitted   = errors.New("search scope all_users requires admin privileges")
	ErrUnsupportedFileType = errors.New("unsupported file type (expected .xlsx or .csv)")
	ErrFileTooLarge        = errors.New("uploaded file is too large")
	ErrNoRows              = errors.New("no rows to import")
	ErrTooManyRows         = errors.New("too many rows in a single import")
	ErrMissingName         = errors.New("name is required")
	ErrMissingPhone        = errors.New("phone is required")
	ErrMissingRegion       = errors.New("region is required")
)
