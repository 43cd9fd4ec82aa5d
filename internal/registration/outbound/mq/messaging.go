package mq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/samber/lo"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/taskagile/internal/pkg/instrument"
	"github.com/shandysiswandi/taskagile/internal/pkg/messaging"
	"github.com/shandysiswandi/taskagile/internal/pkg/validator"
	"github.com/shandysiswandi/taskagile/internal/registration/usecase"
	"github.com/shandysiswandi/taskagile/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

// Retry bounds how often a failed publish is retried.
type Retry struct {
	MaxRetries uint64
	Backoff    time.Duration
}

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
	retry  Retry
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation, r Retry) *Messaging {
	if r.Backoff <= 0 {
		r.Backoff = 100 * time.Millisecond
	}
	return &Messaging{client: client, ins: ins, retry: r}
}

func (m *Messaging) PublishRegistrationSubmitted(ctx context.Context, msg usecase.RegistrationSubmittedEvent) error {
	return m.publish(ctx, "PublishRegistrationSubmitted", event.RegistrationSubmittedDestination,
		msg.Username, event.RegistrationSubmittedMessage{
			Username:     msg.Username,
			EmailAddress: msg.EmailAddress,
			Password:     msg.Password,
			OccurredAt:   msg.OccurredAt,
		})
}

func (m *Messaging) PublishRegistrationRejected(ctx context.Context, msg usecase.RegistrationRejectedEvent) error {
	return m.publish(ctx, "PublishRegistrationRejected", event.RegistrationRejectedDestination,
		"", event.RegistrationRejectedMessage{
			Violations: lo.Map(msg.Violations, func(v validator.Violation, _ int) event.RegistrationViolation {
				return event.RegistrationViolation{Field: v.Field, Rule: string(v.Rule)}
			}),
			OccurredAt: msg.OccurredAt,
		})
}

func (m *Messaging) publish(ctx context.Context, op, destination, key string, payload any) error {
	ctx, span := m.ins.Tracer("registration.outbound.mq").Start(ctx, op)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	out := messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))}},
	}
	if key != "" {
		out.Key = []byte(key)
	}

	b := retry.WithMaxRetries(m.retry.MaxRetries, retry.NewExponential(m.retry.Backoff))
	b = retry.WithCappedDuration(2*time.Second, b)

	if err := retry.Do(ctx, b, func(ctx context.Context) error {
		if _, err := m.client.Publish(ctx, destination, out); err != nil {
			if errors.Is(err, messaging.ErrClosed) {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
