package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Err wraps err into an attribute that the handler prints in red.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

type Options struct {
	// Level is the minimum level to log. Nil means slog.LevelInfo.
	Level slog.Leveler

	TimeFormat string

	// AddSource prints file:line of the call site.
	AddSource bool

	NoColor bool
}

var DefaultOptions = &Options{
	Level:      slog.LevelDebug,
	TimeFormat: time.DateTime,
	AddSource:  true,
}

// Handler writes one colored line per record: time, request id, level, source, message, attrs.
type Handler struct {
	opts   Options
	groups []string
	attrs  []slog.Attr

	mu  *sync.Mutex
	out io.Writer

	faint, requestID, key, errKey, group *color.Color
	levels                               map[slog.Level]*color.Color
}

// NewHandler creates a new Handler with the specified options. A nil opts means [DefaultOptions].
func NewHandler(out io.Writer, opts *Options) *Handler {
	h := &Handler{out: out, mu: &sync.Mutex{}}
	if opts == nil {
		opts = DefaultOptions
	}
	h.opts = *opts
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}

	h.faint = h.paint(color.Faint)
	h.requestID = h.paint(color.FgMagenta)
	h.key = h.paint(color.FgCyan)
	h.errKey = h.paint(color.FgRed)
	h.group = h.paint(color.FgCyan)
	h.levels = map[slog.Level]*color.Color{
		slog.LevelDebug: h.paint(color.BgCyan, color.FgHiWhite),
		slog.LevelInfo:  h.paint(color.BgGreen, color.FgHiWhite),
		slog.LevelWarn:  h.paint(color.BgYellow, color.FgHiWhite),
		slog.LevelError: h.paint(color.BgRed, color.FgHiWhite),
	}

	return h
}

func (h *Handler) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if h.opts.NoColor {
		c.DisableColor()
	}
	return c
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	bf := bufPool.Get().(*bytes.Buffer)
	bf.Reset()
	defer bufPool.Put(bf)

	if !r.Time.IsZero() {
		bf.WriteString(h.faint.Sprint(r.Time.Format(h.opts.TimeFormat)))
		bf.WriteByte(' ')
	}

	if requestID, ok := RequestIDFromContext(ctx); ok {
		bf.WriteString(h.requestID.Sprint(shortID(requestID)))
		bf.WriteByte(' ')
	}

	bf.WriteString(h.levelLabel(r.Level))
	bf.WriteByte(' ')

	if h.opts.AddSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		fmt.Fprintf(bf, "%s:%d ", filepath.Base(f.File), f.Line)
	}

	bf.WriteString("| ")
	bf.WriteString(r.Message)

	prefix := h.groupPrefix()
	for _, a := range h.attrs {
		h.writeAttr(bf, prefix, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(bf, prefix, a)
		return true
	})
	bf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(bf.Bytes())
	return err
}

func (h *Handler) levelLabel(level slog.Level) string {
	c, ok := h.levels[level]
	if !ok {
		return level.String()
	}
	return c.Sprintf("%-5s", level.String())
}

func (h *Handler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return h.group.Sprint(strings.Join(h.groups, ".") + ".")
}

func (h *Handler) writeAttr(bf *bytes.Buffer, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}

	key := h.key
	if strings.Contains(a.Key, "err") {
		key = h.errKey
	}

	bf.WriteByte(' ')
	bf.WriteString(prefix)
	bf.WriteString(key.Sprintf("%s=", a.Key))
	bf.WriteString(a.Value.String())
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &h2
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &h2
}

var bufPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok && requestID != ""
}

// shortID keeps console lines narrow; the full id still goes to the file handler.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
