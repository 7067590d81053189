// Package progress renders per-algorithm progress lines for a running
// benchmark session.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const barWidth = 10

var doneColor = color.New(color.FgGreen)

/*
A Reporter writes one progress line per update. All updates go through
a single lock, so that lines from concurrently running algorithms
never interleave.

A line is only written when the integer percentage of an algorithm
changes. Reset must be called at the start of every session so that
percentages from an earlier session do not suppress new lines.

A nil *Reporter discards all updates.
*/
type Reporter struct {
	mu      sync.Mutex
	w       io.Writer
	percent map[string]int
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w, percent: make(map[string]int)}
}

// Reset forgets all previous state and initializes the given
// algorithms at 0%.
func (r *Reporter) Reset(names ...string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.percent = make(map[string]int, len(names))
	for _, name := range names {
		r.percent[name] = 0
	}
}

// Update records that completed out of total units of work are done
// for name, and writes a line if the percentage changed.
func (r *Reporter) Update(name string, completed, total int) {
	if r == nil || total <= 0 {
		return
	}
	pct := min(completed*100/total, 100)

	r.mu.Lock()
	defer r.mu.Unlock()
	if last, ok := r.percent[name]; ok && last == pct {
		return
	}
	r.percent[name] = pct

	bar := strings.Repeat("=", pct/barWidth)
	fmt.Fprintf(r.w, "\r%s Progress: [%-*s] %3d%%", name, barWidth, bar, pct)
	if pct == 100 {
		doneColor.Fprint(r.w, " - done")
		fmt.Fprintln(r.w)
	}
}

// Percent returns the last reported percentage for name.
func (r *Reporter) Percent(name string) (pct int, ok bool) {
	if r == nil {
		return 0, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pct, ok = r.percent[name]
	return
}

// Finish ends the current line.
func (r *Reporter) Finish() {
	if r == nil {
		return
	}
	r.mu.Lock()
	fmt.Fprintln(r.w)
	r.mu.Unlock()
}
