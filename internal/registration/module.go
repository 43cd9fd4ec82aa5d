package registration

import (
	"fmt"

	playground "github.com/go-playground/validator/v10"
	"github.com/shandysiswandi/taskagile/internal/pkg/clock"
	"github.com/shandysiswandi/taskagile/internal/pkg/goroutine"
	"github.com/shandysiswandi/taskagile/internal/pkg/idempotency"
	"github.com/shandysiswandi/taskagile/internal/pkg/instrument"
	"github.com/shandysiswandi/taskagile/internal/pkg/messaging"
	"github.com/shandysiswandi/taskagile/internal/pkg/router"
	"github.com/shandysiswandi/taskagile/internal/pkg/validator"
	"github.com/shandysiswandi/taskagile/internal/registration/inbound"
	"github.com/shandysiswandi/taskagile/internal/registration/outbound/mq"
	"github.com/shandysiswandi/taskagile/internal/registration/usecase"
)

type Dependency struct {
	Router      *router.Router             `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Idempotency idempotency.Idempotency
	Retry       mq.Retry
}

func New(dep Dependency) error {
	if err := playground.New(playground.WithRequiredStructEnabled()).Struct(dep); err != nil {
		return fmt.Errorf("registration: invalid dependency: %w", err)
	}

	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument, dep.Retry)

	uc := usecase.New(usecase.Dependency{
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Idempotency:   dep.Idempotency,
		Goroutine:     dep.Goroutine,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
