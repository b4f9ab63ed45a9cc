package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Options describes the process-wide logger
type Options struct {
	Level       string
	Format      string
	Service     string
	Version     string
	Environment string
	AddSource   bool
}

// ParseLevel maps a LOG_LEVEL value onto a slog level. Unknown values,
// including the empty string, mean info.
func ParseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// handler builds the slog handler for w, stamping the service attributes
// that are set
func (o Options) handler(w io.Writer) slog.Handler {
	ho := &slog.HandlerOptions{Level: ParseLevel(o.Level), AddSource: o.AddSource}

	var h slog.Handler = slog.NewTextHandler(w, ho)
	if strings.EqualFold(o.Format, FormatJSON) {
		h = slog.NewJSONHandler(w, ho)
	}

	var attrs []slog.Attr
	for _, kv := range [][2]string{
		{AttrKeyService, o.Service},
		{AttrKeyVersion, o.Version},
		{AttrKeyEnvironment, o.Environment},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return h.WithAttrs(attrs)
}
