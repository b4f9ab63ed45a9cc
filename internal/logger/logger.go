package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	contestIDKey
)

// Init installs the default slog logger writing to w
func Init(opts Options, w io.Writer) {
	slog.SetDefault(slog.New(opts.handler(w)))
}

// GenerateRequestID returns a fresh request ID
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID tags ctx so FromContext loggers carry request_id
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithContest tags ctx so FromContext loggers carry contest_id
func WithContest(ctx context.Context, contestID string) context.Context {
	return context.WithValue(ctx, contestIDKey, contestID)
}

// RequestID returns the request ID stored in ctx, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext returns the default logger with whichever of request_id and
// contest_id ctx carries
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if id := RequestID(ctx); id != "" {
		log = log.With(AttrKeyRequestID, id)
	}
	if id, _ := ctx.Value(contestIDKey).(string); id != "" {
		log = log.With(AttrKeyContestID, id)
	}
	return log
}

func Info(msg string, args ...any)  { slog.Default().Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Default().Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
