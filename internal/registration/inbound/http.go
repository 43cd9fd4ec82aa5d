package inbound

import (
	"context"

	"github.com/shandysiswandi/taskagile/internal/pkg/router"
	"github.com/shandysiswandi/taskagile/internal/registration/usecase"
)

type uc interface {
	Submit(ctx context.Context, in usecase.SubmitInput) (*usecase.SubmitOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/registrations", end.Register)
}
