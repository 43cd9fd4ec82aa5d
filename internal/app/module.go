package app

import (
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/taskagile/internal/registration"
	"github.com/shandysiswandi/taskagile/internal/registration/outbound/mq"
)

func (a *App) initModules() {
	if !a.config.GetBool("modules.registration.enabled") {
		return
	}

	dep := registration.Dependency{
		Router:     a.router,
		Goroutine:  a.goroutine,
		Messaging:  a.messaging,
		Validator:  a.validator,
		Instrument: a.ins,
		Clock:      a.clock,
		Retry: mq.Retry{
			MaxRetries: uint64(max(a.config.GetInt("messaging.publish.max_retries"), 0)),
			Backoff:    time.Duration(a.config.GetInt("messaging.publish.retry_backoff_ms")) * time.Millisecond,
		},
	}
	if a.idemp != nil {
		dep.Idempotency = a.idemp
	}

	if err := registration.New(dep); err != nil {
		slog.Error("failed to init module registration", "error", err)
		os.Exit(1)
	}
}
