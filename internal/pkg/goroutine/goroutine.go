// Package goroutine runs bounded background work that must outlive the
// request that scheduled it.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/taskagile/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 100

// ErrPanic is recorded when a task panics.
var ErrPanic = errors.New("goroutine: task panicked")

// Manager runs tasks in goroutines with a concurrency limit and collects
// their errors until Wait is called.
//
// Tasks receive a context that keeps the values of the scheduling context
// (correlation ID, span) but is not canceled with it.
type Manager struct {
	sema chan struct{}
	wg   sync.WaitGroup

	mu     sync.Mutex
	errs   []error
	closed bool
}

// NewManager creates a Manager running at most maxGoroutine tasks at once.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}
	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go schedules f. A nil Manager runs f inline. When the manager is closed or
// saturated the task is dropped and a warning is logged.
func (g *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)

	if g == nil {
		if err := run(ctx, name, f); err != nil {
			slog.WarnContext(ctx, "task failed", "task", name, "error", err)
		}
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, task dropped", "task", name)
		return
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached, task dropped", "task", name)
		return
	}

	g.wg.Go(func() {
		defer func() { <-g.sema }()

		if err := run(ctx, name, f); err != nil {
			slog.WarnContext(ctx, "task failed", "task", name, "error", err)
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	})
}

// Wait stops accepting tasks, blocks until running ones finish and returns
// their joined errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}

func run(ctx context.Context, name string, f func(ctx context.Context) error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic occurred in goroutine",
				"task", name,
				"panic", rvr,
				"stack", stacktrace.InternalPaths(debug.Stack()),
			)
			err = ErrPanic
		}
	}()

	return f(ctx)
}
