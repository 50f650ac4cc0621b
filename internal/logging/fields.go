package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Site fields.
	FieldSource      = "source"
	FieldDest        = "dest"
	FieldTitle       = "title"
	FieldBytes       = "bytes"
	FieldElements    = "elements"
	FieldContentDir  = "content_dir"
	FieldStaticDir   = "static_dir"
	FieldOutputDir   = "output_dir"
	FieldTemplate    = "template"
	FieldBasePath    = "base_path"
	FieldJobs        = "jobs"
	FieldStaticFiles = "static_files"
	FieldDuration    = "duration"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldFilesSkipped    = "files_skipped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
