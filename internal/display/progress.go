package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// ProgressIndicator reports sizing progress on the diagnostic stream. Each
// update rewrites a single line with a carriage return so progress never
// scrolls, and Finish clears the line before any further output so results
// and warnings never share it. Safe for concurrent use.
type ProgressIndicator struct {
	mu     sync.Mutex
	writer io.Writer
	paint  *color.Color
	active bool
}

// NewProgressIndicator creates an indicator writing to w.
func NewProgressIndicator(w io.Writer) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		paint:  color.New(color.FgCyan),
	}
}

// Update rewrites the progress line to done out of total measurements.
func (p *ProgressIndicator) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = true
	p.paint.Fprintf(p.writer, "\rSizing entries... [%d/%d]", done, total)
}

// Finish clears the progress line. A never-updated indicator writes
// nothing.
func (p *ProgressIndicator) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	fmt.Fprint(p.writer, "\r\x1b[K")
	p.active = false
}
