// Package telemetry is the optional observability collaborator of the web
// tier. When no Application Insights connection string is configured every
// call is a no-op.
package telemetry

import (
	"context"

	"bookshelf/internal/httpx"

	"go.uber.org/zap"
)

const loggerName = "bookshelf.web"

// Recorder receives informational and error events from request handling.
type Recorder interface {
	RecordInfo(ctx context.Context, msg string, fields ...zap.Field)
	RecordError(ctx context.Context, msg string, err error, fields ...zap.Field)
}

type nopRecorder struct{}

func (nopRecorder) RecordInfo(context.Context, string, ...zap.Field)         {}
func (nopRecorder) RecordError(context.Context, string, error, ...zap.Field) {}

// Nop returns a Recorder that discards everything.
func Nop() Recorder {
	return nopRecorder{}
}

type zapRecorder struct {
	log *zap.Logger
}

// NewRecorder returns a Recorder that writes events through a named child of
// log, tagged with the target Application Insights resource.
func NewRecorder(conn ConnectionString, log *zap.Logger) Recorder {
	return &zapRecorder{
		log: log.Named(loggerName).With(
			zap.String("instrumentation_key", conn.RedactedKey()),
			zap.String("ingestion_endpoint", conn.IngestionEndpoint),
		),
	}
}

// New picks the Recorder implementation for a raw connection string: Nop for
// an empty one, a logging recorder otherwise.
func New(raw string, log *zap.Logger) (Recorder, error) {
	if raw == "" {
		return Nop(), nil
	}
	conn, err := ParseConnectionString(raw)
	if err != nil {
		return nil, err
	}
	return NewRecorder(conn, log), nil
}

func (r *zapRecorder) RecordInfo(ctx context.Context, msg string, fields ...zap.Field) {
	eventsTotal.WithLabelValues("info").Inc()
	r.log.Info(msg, withRequestID(ctx, fields)...)
}

func (r *zapRecorder) RecordError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	eventsTotal.WithLabelValues("error").Inc()
	r.log.Error(msg, append(withRequestID(ctx, fields), zap.Error(err))...)
}

func withRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if id := httpx.RequestIDFromContext(ctx); id != "" {
		return append(fields, zap.String("request_id", id))
	}
	return fields
}
