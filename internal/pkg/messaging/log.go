package messaging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// LogConfig configures the log driver.
type LogConfig struct {
	// Logger receives published messages. Defaults to slog.Default().
	Logger *slog.Logger
}

// Log is a Publisher that writes each message to the structured log.
// It is meant for local runs without a broker.
type Log struct {
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewLog returns a log-backed Publisher.
func NewLog(cfg LogConfig) *Log {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Publish logs the message body and headers.
func (l *Log) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}

	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return PublishResult{}, ErrClosed
	}

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}

	l.logger.InfoContext(ctx, "message published",
		"destination", destination,
		"headers", headers,
		"body", string(msg.Body),
	)

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Close marks the publisher closed.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}
