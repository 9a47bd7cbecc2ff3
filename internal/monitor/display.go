package monitor

import (
	"fmt"
	"io"
	"sync"

	"github.com/gosuri/uilive"
)

// TerminalDisplay redraws the label in place on an ANSI terminal.
type TerminalDisplay struct {
	mu sync.Mutex
	w  *uilive.Writer
}

func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	w := uilive.New()
	w.Out = out
	return &TerminalDisplay{w: w}
}

func (d *TerminalDisplay) Update(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Flush skips an empty buffer, so clearing goes through Bypass.
	if text == "" {
		_, _ = d.w.Bypass().Write(nil)
		return
	}
	_, _ = fmt.Fprintln(d.w, text)
	_ = d.w.Flush()
}
