package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-mcp-gateway/internal/config"
)

// NewLogger builds the process-wide logger. Records are rendered as
//
//	<ISO8601 timestamp> - <source> - <LEVEL> - <message> [key=value ...]
//
// and appended to the configured log file as well as mirrored to stderr.
// Stdout is off limits: it carries the MCP stdio stream. The returned closer
// owns the log file handle. Construct once in main and share by reference.
func NewLogger(cfg *config.Config, clock clockwork.Clock) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	h := NewLineHandler([]io.Writer{f, os.Stderr}, cfg.ServerName, level, clock)
	return slog.New(h), f, nil
}

// ParseLevel maps a config log level string onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// LevelName renders a slog level in the log line format. slog spells the
// third level WARN; the log sink format uses WARNING.
func LevelName(l slog.Level) string {
	if l == slog.LevelWarn {
		return "WARNING"
	}
	return l.String()
}

// LineHandler is a slog.Handler that writes one formatted line per record to
// each of its sinks. A single mutex serializes writes so that every record is
// one atomic append even when tool invocations are dispatched concurrently.
type LineHandler struct {
	mu     *sync.Mutex
	sinks  []io.Writer
	source string
	level  slog.Level
	clock  clockwork.Clock
	attrs  []slog.Attr
}

// NewLineHandler creates a handler writing to the given sinks at or above level.
func NewLineHandler(sinks []io.Writer, source string, level slog.Level, clock clockwork.Clock) *LineHandler {
	return &LineHandler{
		mu:     &sync.Mutex{},
		sinks:  sinks,
		source: source,
		level:  level,
		clock:  clock,
	}
}

// Enabled reports whether records at the given level are emitted.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle renders the record into a single line and appends it to every sink.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.clock.Now().Format(time.RFC3339))
	b.WriteString(" - ")
	b.WriteString(h.source)
	b.WriteString(" - ")
	b.WriteString(LevelName(r.Level))
	b.WriteString(" - ")
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, a)
		return true
	})
	b.WriteByte('\n')

	line := b.String()

	h.mu.Lock()
	defer h.mu.Unlock()
	var firstErr error
	for _, w := range h.sinks {
		if _, err := io.WriteString(w, line); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WithAttrs returns a handler that includes attrs on every record.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup is accepted but groups are flattened; the line format has no nesting.
func (h *LineHandler) WithGroup(string) slog.Handler {
	return h
}

func writeAttr(b *strings.Builder, a slog.Attr) {
	fmt.Fprintf(b, " %s=%v", a.Key, a.Value.Resolve().Any())
}
