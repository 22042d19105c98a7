package constants

// Common error messages
const (
	ErrInvalidSession      = "invalid user_id or session"
	ErrInvalidJSON         = "invalid json or missing fields"
	ErrInvalidJSONShort    = "Invalid JSON"
	ErrMissingUserID       = "Missing or invalid user_id in body"
	ErrUserIDRequired      = "user_id required"
	ErrDB                  = "DB error"
	ErrInvalidRequestBody  = "Invalid request body"
	ErrFailedToQuery       = "Failed to query"
	ErrPleaseLogin         = "Please login to continue."
	ErrMethodNotAllowed    = "Method Not Allowed"
	ErrNoContractorAccess  = "No accessible pharmacy contractors found"
	ErrNoFilesUploaded     = "No files uploaded"
	ErrNotASpreadsheet     = "The uploaded file could not be read as a spreadsheet"
	ErrScheduleUnusable    = "The spreadsheet does not look like a payment schedule"
	ErrDuplicateSchedule   = "This payment schedule file was already uploaded earlier"
)

// Content types
const (
	ContentTypeText      = "Content-Type"
	ContentTypeJSON      = "application/json"
	ContentTypeMultipart = "multipart/form-data"
)

// Request/response keys
const (
	KeyUserID    = "user_id"
	ValueSuccess = "success"
	ValueError   = "error"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

// NBSP shows up in cells and filenames exported from some spreadsheet tools.
const NBSP = " "
