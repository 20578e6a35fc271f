// Package debug provides probe instrumentation for diskspace.
package debug

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/danpilch/diskspace/pkg/diskspace"
)

var (
	debugTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	debugHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	debugDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ProbeTiming records the duration of one probe.
type ProbeTiming struct {
	Path     string
	Duration time.Duration
	Failed   bool
}

// TimedProber wraps a diskspace.Prober to record probe durations.
type TimedProber struct {
	inner diskspace.Prober

	mu      sync.Mutex
	timings []ProbeTiming
}

// NewTimedProber wraps a prober with timing instrumentation.
func NewTimedProber(p diskspace.Prober) *TimedProber {
	return &TimedProber{
		inner: p,
	}
}

// Probe runs the wrapped prober and records its duration.
func (t *TimedProber) Probe(path string) (diskspace.Usage, error) {
	start := time.Now()
	usage, err := t.inner.Probe(path)
	timing := ProbeTiming{
		Path:     path,
		Duration: time.Since(start),
		Failed:   err != nil,
	}

	t.mu.Lock()
	t.timings = append(t.timings, timing)
	t.mu.Unlock()
	return usage, err
}

// Timings returns a copy of the recorded timings.
func (t *TimedProber) Timings() []ProbeTiming {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]ProbeTiming(nil), t.timings...)
}

// TimingReport prints a styled timing summary.
func TimingReport(w io.Writer, timings []ProbeTiming) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, debugTitle.Render("Probe Timing Report"))
	fmt.Fprintln(w, debugDim.Render(strings.Repeat("═", 40)))
	fmt.Fprintf(w, "  %s  %s\n",
		debugHeader.Render("PATH               "),
		debugHeader.Render("DURATION    "))
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 40)))

	var total time.Duration
	for _, t := range timings {
		suffix := ""
		if t.Failed {
			suffix = debugDim.Render(" (failed)")
		}
		fmt.Fprintf(w, "  %-20s %v%s\n", t.Path, t.Duration, suffix)
		total += t.Duration
	}
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 40)))
	fmt.Fprintf(w, "  %-20s %v\n",
		lipgloss.NewStyle().Bold(true).Render("TOTAL"), total)
}
