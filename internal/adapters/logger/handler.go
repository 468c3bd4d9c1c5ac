package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/tasklist/internal/ui/output"
	"go.trai.ch/tasklist/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one coloured line per record,
// prefixed with the warning or error icon.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &PrettyHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record. Later lines of a multi-line message
// (an error joined with its causes) continue as indented "→" lines unless they
// are blank or already indented. Attributes follow the first line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)

	head, rest, _ := strings.Cut(r.Message, "\n")
	if icon != "" {
		head = icon + " " + head
	}

	var b strings.Builder
	b.WriteString(h.out.String(head).Foreground(color).String())

	if attrs := h.formatAttrs(r); attrs != "" {
		b.WriteString(" ")
		b.WriteString(h.out.String(attrs).Foreground(termenv.RGBColor(string(style.Slate))).Faint().String())
	}
	b.WriteString("\n")

	rest = strings.TrimRight(rest, "\n")
	if rest != "" {
		for line := range strings.SplitSeq(rest, "\n") {
			// Blank and indented lines are already laid out by the caller.
			if line != "" && !strings.HasPrefix(line, " ") {
				line = "  → " + line
			}
			if line != "" {
				b.WriteString(h.out.String(line).Foreground(color).String())
			}
			b.WriteString("\n")
		}
	}

	_, err := h.out.WriteString(b.String())
	return err
}

func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

//nolint:gocritic // slog.Record by value, as in Handle
func (h *PrettyHandler) formatAttrs(r slog.Record) string {
	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		parts = append(parts, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(h.group, attr))
		return true
	})
	return strings.Join(parts, " ")
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newAttrs = append(newAttrs, h.attrs...)
	newAttrs = append(newAttrs, attrs...)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler whose later attributes are prefixed with
// name, nested under any group already set.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: group,
	}
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
