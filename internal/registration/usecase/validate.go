package usecase

import (
	"context"

	"github.com/shandysiswandi/taskagile/internal/pkg/validator"
	"github.com/shandysiswandi/taskagile/internal/registration/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type ValidateInput struct {
	Request entity.RegistrationRequest
	// Locales lists preferred message locales, most preferred first.
	Locales []string
}

// Validate checks the payload and returns every violation found.
// An empty result means the payload may proceed to account creation.
func (s *Usecase) Validate(ctx context.Context, in ValidateInput) validator.Violations {
	ctx, span := s.startSpan(ctx, "Validate")
	defer span.End()

	vs := s.validator.ValidateLocale(in.Request, in.Locales...)

	span.SetAttributes(attribute.Int("registration.violations", len(vs)))
	if s.violationCounter != nil {
		for _, v := range vs {
			s.violationCounter.Add(ctx, 1, metric.WithAttributes(
				attribute.String("field", v.Field),
				attribute.String("rule", string(v.Rule)),
			))
		}
	}

	return vs
}
