package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Maximum task text length, counted in characters after trimming
max_text_length = 200

# Go time layout for the creation date shown under each task
date_format = "02/01/2006"

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.tasklist/logs"

# Logging: debug, info, warn, error
log_level = "info"

# Log line format: text, json, logfmt
log_format = "text"

log_timestamps = true
log_caller = false
`
}
