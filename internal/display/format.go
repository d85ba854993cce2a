// Package display renders scan results as human-readable text: a flat size
// table or an indented tree, followed by the accumulated warnings on the
// diagnostic stream.
package display

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SizeColumnWidth is the fixed width of the size column, wide enough for
// "1023.99 MB" plus padding.
const SizeColumnWidth = 12

// sizeNames are the unit labels for FormatSize, in ascending order.
var sizeNames = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count as a human-readable string with two
// decimal places, e.g. "1.23 MB".
func FormatSize(bytes uint64) string {
	if bytes == 0 {
		return "0 B"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeNames)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeNames[unit])
}

// PathFormat selects how result paths are printed.
type PathFormat int

const (
	// FormatRelative prints paths relative to the scan root (default).
	FormatRelative PathFormat = iota
	// FormatAbsolute prints full absolute paths.
	FormatAbsolute
	// FormatBasename prints only the last path component.
	FormatBasename
)

func (f PathFormat) String() string {
	switch f {
	case FormatAbsolute:
		return "absolute"
	case FormatBasename:
		return "basename"
	default:
		return "relative"
	}
}

// ParsePathFormat parses a path format name.
func ParsePathFormat(s string) (PathFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "absolute":
		return FormatAbsolute, nil
	case "relative", "":
		return FormatRelative, nil
	case "basename":
		return FormatBasename, nil
	default:
		return FormatRelative, fmt.Errorf("invalid path format %q, must be absolute, relative, or basename", s)
	}
}

// FormatPath renders path according to the format, relative to root where
// that applies. The root itself renders as "." in relative format.
func FormatPath(path, root string, format PathFormat) string {
	switch format {
	case FormatAbsolute:
		return path
	case FormatBasename:
		return filepath.Base(path)
	default:
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return path
		}
		return rel
	}
}
