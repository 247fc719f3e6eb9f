// Package perf times menu operations for a session summary.
// Enable with environment variable FILEMANAGER_PERF=1 for a summary on exit,
// or FILEMANAGER_TRACE=<filename> to also write a trace file for `go tool trace`.
package perf

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/trace"
	"sort"
	"strings"
	"sync"
	"time"
)

// Environment variables that enable tracing
const (
	EnvPerf  = "FILEMANAGER_PERF"
	EnvTrace = "FILEMANAGER_TRACE"
)

// Span is one timed operation.
type Span struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	region    *trace.Region
}

// Duration returns the duration of this span.
func (s *Span) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}

	return s.EndTime.Sub(s.StartTime)
}

// Stat aggregates every span that shares a name.
type Stat struct {
	Name  string
	Count int
	Total time.Duration
}

// Tracer collects spans for one session.
type Tracer struct {
	mu        sync.Mutex
	enabled   bool
	traceFile *os.File
	spans     []*Span
	startTime time.Time
	output    io.Writer
	now       func() time.Time
}

// NewTracer creates a tracer writing its summary to output.
func NewTracer(enabled bool, output io.Writer) *Tracer {
	return &Tracer{
		enabled:   enabled,
		startTime: time.Now(),
		output:    output,
		now:       time.Now,
	}
}

var (
	// globalTracer is the singleton tracer instance
	globalTracer *Tracer
	once         sync.Once
)

// Init initializes the global tracer based on environment variables.
// Call this at the very beginning of main().
func Init() {
	once.Do(func() {
		globalTracer = NewTracer(os.Getenv(EnvPerf) == "1", os.Stderr)

		traceFile := os.Getenv(EnvTrace)
		if traceFile == "" {
			return
		}

		//nolint:gosec // G304: Path comes from trusted env variable, not user input
		f, err := os.Create(traceFile)
		if err != nil {
			//nolint:errcheck // Best-effort warning output
			fmt.Fprintf(os.Stderr, "Warning: failed to create trace file: %v\n", err)
			return
		}

		if err := trace.Start(f); err != nil {
			//nolint:errcheck // Best-effort warning output
			fmt.Fprintf(os.Stderr, "Warning: failed to start trace: %v\n", err)
			//nolint:errcheck,gosec // Best-effort cleanup
			f.Close()

			return
		}

		globalTracer.traceFile = f
		globalTracer.enabled = true
	})
}

// Enabled returns true if performance tracing is enabled.
func Enabled() bool {
	return globalTracer != nil && globalTracer.enabled
}

// StartSpan begins a new timed span on the global tracer. Returns a function to end the span.
// Usage:
//
//	end := perf.StartSpan("organize")
//	defer end()
func StartSpan(name string) func() {
	if globalTracer == nil {
		return func() {}
	}

	return globalTracer.StartSpan(name)
}

// Shutdown finalizes tracing and outputs the summary.
// Call this at the end of main() using defer.
func Shutdown() {
	if globalTracer == nil {
		return
	}

	globalTracer.Shutdown()
}

// StartSpan begins a new timed span. Spans with the same name may repeat.
func (t *Tracer) StartSpan(name string) func() {
	if !t.enabled {
		return func() {}
	}

	t.mu.Lock()
	span := &Span{Name: name, StartTime: t.now()}
	if t.traceFile != nil {
		span.region = trace.StartRegion(context.Background(), name)
	}
	t.spans = append(t.spans, span)
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		if !span.EndTime.IsZero() {
			return
		}

		span.EndTime = t.now()
		if span.region != nil {
			span.region.End()
		}
	}
}

// Stats returns per-name totals, longest first.
func (t *Tracer) Stats() []Stat {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stats()
}

func (t *Tracer) stats() []Stat {
	byName := make(map[string]*Stat)
	var order []string

	for _, span := range t.spans {
		stat, ok := byName[span.Name]
		if !ok {
			stat = &Stat{Name: span.Name}
			byName[span.Name] = stat
			order = append(order, span.Name)
		}
		stat.Count++
		stat.Total += span.Duration()
	}

	stats := make([]Stat, 0, len(order))
	for _, name := range order {
		stats = append(stats, *byName[name])
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total > stats[j].Total
	})

	return stats
}

// Shutdown stops any trace file and prints the summary when enabled.
func (t *Tracer) Shutdown() {
	if !t.enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.traceFile != nil {
		trace.Stop()
		//nolint:errcheck,gosec // Best-effort cleanup
		t.traceFile.Close()
		//nolint:errcheck // Best-effort debug output
		_, _ = fmt.Fprintf(t.output, "\nTrace written to: %s\n", t.traceFile.Name())
		//nolint:errcheck // Best-effort debug output
		_, _ = fmt.Fprintf(t.output, "View with: go tool trace %s\n", t.traceFile.Name())
		t.traceFile = nil
	}

	t.printSummary(t.now().Sub(t.startTime))
}

//nolint:errcheck // Best-effort debug output - errors writing to stderr are not actionable
func (t *Tracer) printSummary(session time.Duration) {
	rule := strings.Repeat("─", 68)

	_, _ = fmt.Fprintf(t.output, "\nSession time: %s\n", session.Round(time.Microsecond))
	_, _ = fmt.Fprintln(t.output, rule)
	_, _ = fmt.Fprintf(t.output, "%-30s %6s %14s %15s\n", "OPERATION", "COUNT", "DURATION", "% SESSION")
	_, _ = fmt.Fprintln(t.output, rule)

	for _, stat := range t.stats() {
		percent := 0.0
		if session > 0 {
			percent = float64(stat.Total) / float64(session) * 100
		}

		name := stat.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}

		_, _ = fmt.Fprintf(t.output, "%-30s %6d %14s %s %.1f%%\n",
			name,
			stat.Count,
			stat.Total.Round(time.Microsecond),
			progressBar(percent, 8),
			percent)
	}

	_, _ = fmt.Fprintln(t.output, rule)
}

func progressBar(percent float64, width int) string {
	filled := min(max(int(percent/100.0*float64(width)), 0), width)

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
