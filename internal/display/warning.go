package display

import (
	"io"

	"github.com/fatih/color"
	"github.com/rcastner/duscan/internal/scan"
)

// FlushWarnings writes the accumulated warnings to out in encounter order,
// after the primary output has been written. Warnings render in yellow when
// out is a terminal; fatih/color handles TTY and NO_COLOR detection.
func FlushWarnings(out io.Writer, warnings []scan.Warning) {
	if len(warnings) == 0 {
		return
	}

	yellow := color.New(color.FgYellow)
	yellow.Fprintf(out, "%d warning(s):\n", len(warnings))
	for _, w := range warnings {
		yellow.Fprintf(out, "  warning: %s\n", w.String())
	}
}

// PrintError writes a fatal error message to out in red.
func PrintError(out io.Writer, err error) {
	red := color.New(color.FgRed)
	red.Fprintf(out, "Error: %v\n", err)
}
