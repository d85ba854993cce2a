package scan

import "fmt"

// ConfigError reports invalid configuration: a bad size format, an unknown
// sort key, or conflicting flags. It is fatal and detected before any
// traversal starts.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TargetError reports an unusable scan root: missing, not a directory, or
// unreadable. It is fatal and distinct from ConfigError for exit-code
// purposes.
type TargetError struct {
	Path string
	Err  error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("target directory %s: %v", e.Path, e.Err)
}

func (e *TargetError) Unwrap() error { return e.Err }

// AllFailedError is raised only when every candidate produced a traversal
// warning and the run ends with zero sized entries.
type AllFailedError struct {
	Root     string
	Warnings int
}

func (e *AllFailedError) Error() string {
	return fmt.Sprintf("no path under %s could be read (%d warnings)", e.Root, e.Warnings)
}
