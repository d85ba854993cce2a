package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rcastner/duscan/internal/scan"
)

// treeIndent is the indentation per depth level in tree output.
const treeIndent = "  "

// Renderer writes scan results as text.
type Renderer struct {
	// Out receives the primary output.
	Out io.Writer

	// Root is the scan root, needed for relative path formatting.
	Root string

	// Format selects the path style for flat output. Tree output always
	// prints basenames under indentation.
	Format PathFormat
}

// Render writes the result's entries to Out, one line per entry: a
// fixed-width size column followed by the path. Tree results are indented
// by each entry's depth.
func (r Renderer) Render(res *scan.Result) error {
	var b strings.Builder
	for _, e := range res.Entries {
		sizeField := pad(FormatSize(e.Size))
		if res.Tree {
			indent := strings.Repeat(treeIndent, e.Depth)
			b.WriteString(indent)
			b.WriteString(sizeField)
			b.WriteString("  ")
			b.WriteString(FormatPath(e.Path, r.Root, FormatBasename))
		} else {
			b.WriteString(sizeField)
			b.WriteString("  ")
			b.WriteString(FormatPath(e.Path, r.Root, r.Format))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.Out, b.String())
	return err
}

// pad left-aligns a size string in the fixed size column.
func pad(s string) string {
	if len(s) >= SizeColumnWidth {
		return s
	}
	return s + strings.Repeat(" ", SizeColumnWidth-len(s))
}

// Summary returns a one-line run summary suitable for the diagnostic
// stream.
func Summary(res *scan.Result) string {
	return fmt.Sprintf("%d entries, %d warnings, %s",
		len(res.Entries), len(res.Warnings), res.Duration.Round(time.Millisecond))
}
