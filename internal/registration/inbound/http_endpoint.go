package inbound

import (
	"strings"

	"github.com/shandysiswandi/taskagile/internal/pkg/router"
	"github.com/shandysiswandi/taskagile/internal/registration/entity"
	"github.com/shandysiswandi/taskagile/internal/registration/usecase"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type HTTPEndpoint struct {
	uc uc
}

// Register validates a registration payload and forwards it when clean.
// @Summary Submit registration
// @Description Validates username, email address and password and hands an accepted payload to account creation.
// @Tags Registration
// @Accept json
// @Produce json
// @Param Accept-Language header string false "Message locale (ko, en)"
// @Param Idempotency-Key header string false "Publishes a retried submission at most once"
// @Param request body RegisterRequest true "Registration payload"
// @Success 202 {object} router.successResponse{data=RegisterResponse} "Registration accepted"
// @Failure 400 {object} router.errorResponse "Invalid request body or validation error"
// @Failure 409 {object} router.errorResponse "Same Idempotency-Key is still being processed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/registrations [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Submit(r.Context(), usecase.SubmitInput{
		Request:        entity.NewRegistrationRequest(req.Username, req.EmailAddress, req.Password),
		Locales:        r.Locales(),
		IdempotencyKey: strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey)),
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		Username:     resp.Username,
		EmailAddress: resp.EmailAddress,
	}, nil
}
