package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/taskagile/internal/pkg/clock"
	"github.com/shandysiswandi/taskagile/internal/pkg/goroutine"
	"github.com/shandysiswandi/taskagile/internal/pkg/idempotency"
	"github.com/shandysiswandi/taskagile/internal/pkg/instrument"
	"github.com/shandysiswandi/taskagile/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type RegistrationSubmittedEvent struct {
	Username     string
	EmailAddress string
	Password     string
	OccurredAt   time.Time
}

type RegistrationRejectedEvent struct {
	Violations validator.Violations
	OccurredAt time.Time
}

type repoMessaging interface {
	PublishRegistrationSubmitted(ctx context.Context, msg RegistrationSubmittedEvent) error
	PublishRegistrationRejected(ctx context.Context, msg RegistrationRejectedEvent) error
}

type Usecase struct {
	repoMessaging    repoMessaging
	validator        validator.Validator
	idempotency      idempotency.Idempotency
	goroutine        *goroutine.Manager
	clock            clock.Clocker
	ins              instrument.Instrumentation
	violationCounter metric.Int64Counter
}

type Dependency struct {
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Idempotency   idempotency.Idempotency // optional
	Goroutine     *goroutine.Manager
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	counter, err := dep.Instrument.Meter("registration.usecase").Int64Counter(
		"registration.violations",
		metric.WithDescription("Number of registration payload violations by field and rule"),
	)
	if err != nil {
		slog.Error("failed to create registration violation counter", "error", err)
	}

	clk := dep.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Usecase{
		repoMessaging:    dep.RepoMessaging,
		validator:        dep.Validator,
		idempotency:      dep.Idempotency,
		goroutine:        dep.Goroutine,
		clock:            clk,
		ins:              dep.Instrument,
		violationCounter: counter,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("registration.usecase").Start(ctx, name)
}
