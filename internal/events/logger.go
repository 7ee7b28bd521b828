package events

import (
	"context"

	"go.uber.org/zap"
)

// Logger is the default consumer sink: it logs received events and keeps no
// state.
type Logger struct {
	logger *zap.Logger
}

// NewLogger creates a logging event sink.
func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) HandleURLCreated(_ context.Context, event *URLCreated) error {
	l.logger.Info("url created",
		zap.String("code", event.Code),
		zap.String("originalUrl", event.OriginalURL),
		zap.Time("createdAt", event.CreatedAt),
		zap.String("clientIp", event.ClientIP),
	)

	return nil
}

func (l *Logger) HandleURLResolved(_ context.Context, event *URLResolved) error {
	l.logger.Info("url resolved",
		zap.String("code", event.Code),
		zap.Int64("hits", event.Hits),
		zap.Time("resolvedAt", event.ResolvedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}
