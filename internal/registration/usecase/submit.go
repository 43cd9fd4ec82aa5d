package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/taskagile/internal/pkg/goerror"
	"github.com/shandysiswandi/taskagile/internal/pkg/idempotency"
	"github.com/shandysiswandi/taskagile/internal/registration/entity"
)

type SubmitInput struct {
	Request entity.RegistrationRequest
	Locales []string
	// IdempotencyKey makes a retried submission publish at most once.
	IdempotencyKey string
}

type SubmitOutput struct {
	Username     string
	EmailAddress string
}

// Submit validates the payload and hands it to account creation.
func (s *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "Submit")
	defer span.End()

	vs := s.Validate(ctx, ValidateInput{Request: in.Request, Locales: in.Locales})
	if len(vs) > 0 {
		ev := RegistrationRejectedEvent{Violations: vs, OccurredAt: s.clock.Now()}
		s.goroutine.Go(ctx, "PublishRegistrationRejected", func(ctx context.Context) error {
			return s.repoMessaging.PublishRegistrationRejected(ctx, ev)
		})
		return nil, goerror.NewInvalidInput(vs)
	}

	username, _ := in.Request.Username()
	emailAddress, _ := in.Request.EmailAddress()
	password, _ := in.Request.Password()

	publish := func(ctx context.Context) error {
		return s.repoMessaging.PublishRegistrationSubmitted(ctx, RegistrationSubmittedEvent{
			Username:     username,
			EmailAddress: emailAddress,
			Password:     password,
			OccurredAt:   s.clock.Now(),
		})
	}

	var err error
	if in.IdempotencyKey != "" && s.idempotency != nil {
		err = s.idempotency.Do(ctx, "registration:"+in.IdempotencyKey, publish)
	} else {
		err = publish(ctx)
	}

	switch {
	case errors.Is(err, idempotency.ErrCompleted):
		slog.InfoContext(ctx, "registration replayed", "idempotency_key", in.IdempotencyKey)
	case errors.Is(err, idempotency.ErrInProgress):
		return nil, goerror.NewConflict("Registration is already being processed")
	case err != nil:
		slog.ErrorContext(ctx, "failed to publish registration submitted", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SubmitOutput{Username: username, EmailAddress: emailAddress}, nil
}
