package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	sgrReset   = "\x1b[0m"
	sgrFaint   = "\x1b[2m"
	sgrRed     = "\x1b[31m"
	sgrYellow  = "\x1b[33m"
	sgrBlue    = "\x1b[34m"
	sgrMagenta = "\x1b[35m"
	sgrBoldRed = "\x1b[1;31m"
)

// TerminalHandler renders log records as single coloured lines for
// interactive use:
//
//	15:04:05  INFO scoring run started workers=8
//
// Attributes added via WithAttrs are formatted once and replayed on every
// record; group names become dotted key prefixes.
type TerminalHandler struct {
	out      io.Writer
	min      slog.Leveler
	prefix   string
	preattrs string
	mu       *sync.Mutex
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *TerminalHandler {
	min := slog.Leveler(slog.LevelInfo)
	if opts != nil && opts.Level != nil {
		min = opts.Level
	}
	return &TerminalHandler{out: w, min: min, mu: &sync.Mutex{}}
}

// Enabled reports whether records at the given level are rendered.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min.Level()
}

// Handle writes one formatted line per record.
func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	line.Grow(192)

	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	line.WriteString(sgrFaint)
	line.WriteString(when.Format("15:04:05"))
	line.WriteString(sgrReset)
	line.WriteByte(' ')
	line.WriteString(levelBadge(r.Level))
	line.WriteByte(' ')
	line.WriteString(r.Message)

	line.WriteString(h.preattrs)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&line, h.prefix, a)
		return true
	})
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line.String())
	return err
}

// WithAttrs pre-renders attrs so repeated records pay for them once.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var rendered strings.Builder
	rendered.WriteString(h.preattrs)
	for _, a := range attrs {
		writeAttr(&rendered, h.prefix, a)
	}
	clone := *h
	clone.preattrs = rendered.String()
	return &clone
}

// WithGroup extends the dotted key prefix for subsequent attributes.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func levelBadge(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return sgrBoldRed + "ERROR" + sgrReset
	case level >= slog.LevelWarn:
		return sgrYellow + " WARN" + sgrReset
	case level >= slog.LevelInfo:
		return sgrBlue + " INFO" + sgrReset
	default:
		return sgrMagenta + "DEBUG" + sgrReset
	}
}

func writeAttr(line *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(line, sub, ga)
		}
		return
	}

	line.WriteByte(' ')
	line.WriteString(sgrFaint)
	line.WriteString(prefix)
	line.WriteString(a.Key)
	line.WriteByte('=')
	line.WriteString(sgrReset)
	line.WriteString(renderValue(a.Value))
}

func renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " \t\n\"\\=") {
			return strconv.Quote(s)
		}
		return s
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		if err, ok := v.Any().(error); ok {
			return sgrRed + strconv.Quote(err.Error()) + sgrReset
		}
		return v.String()
	}
}
