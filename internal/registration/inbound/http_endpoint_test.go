package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/taskagile/internal/pkg/config"
	"github.com/shandysiswandi/taskagile/internal/pkg/goroutine"
	"github.com/shandysiswandi/taskagile/internal/pkg/instrument"
	"github.com/shandysiswandi/taskagile/internal/pkg/router"
	"github.com/shandysiswandi/taskagile/internal/pkg/uid"
	"github.com/shandysiswandi/taskagile/internal/registration/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessaging struct {
	submitted []usecase.RegistrationSubmittedEvent
}

func (f *fakeMessaging) PublishRegistrationSubmitted(_ context.Context, msg usecase.RegistrationSubmittedEvent) error {
	f.submitted = append(f.submitted, msg)
	return nil
}

func (f *fakeMessaging) PublishRegistrationRejected(context.Context, usecase.RegistrationRejectedEvent) error {
	return nil
}

type violationBody struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type responseBody struct {
	Message    string            `json:"message"`
	Data       map[string]string `json:"data"`
	Violations []violationBody   `json:"violations"`
}

func newTestServer(t *testing.T) (http.Handler, *fakeMessaging) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("instrument:\n  log_mask_fields: [password]\n"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	v, err := usecase.NewValidator("")
	require.NoError(t, err)

	ins := instrument.NewNoop()
	msg := &fakeMessaging{}
	g := goroutine.NewManager(4)
	t.Cleanup(func() { _ = g.Wait() })

	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: ins})
	RegisterHTTPEndpoint(r, usecase.New(usecase.Dependency{
		RepoMessaging: msg,
		Validator:     v,
		Goroutine:     g,
		Instrument:    ins,
	}))

	return r, msg
}

func do(t *testing.T, h http.Handler, body, lang string) (*httptest.ResponseRecorder, responseBody) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out responseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHTTPEndpoint_Register(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		h, msg := newTestServer(t)

		rec, out := do(t, h, `{"username":"MyUsername","emailAddress":"sunny@taskagile.com","password":"MyPassword"}`, "")
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "Registration accepted.", out.Message)
		assert.Equal(t, map[string]string{"username": "MyUsername", "emailAddress": "sunny@taskagile.com"}, out.Data)
		require.Len(t, msg.submitted, 1)
		assert.Equal(t, "MyPassword", msg.submitted[0].Password)
	})

	t.Run("blank payload yields three required violations", func(t *testing.T) {
		h, msg := newTestServer(t)

		rec, out := do(t, h, `{}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Validation error", out.Message)
		require.Len(t, out.Violations, 3)
		for _, v := range out.Violations {
			assert.Equal(t, "required", v.Rule)
			assert.NotEmpty(t, v.Message)
		}
		assert.Empty(t, msg.submitted)
	})

	t.Run("null is treated as absent", func(t *testing.T) {
		h, _ := newTestServer(t)

		rec, out := do(t, h, `{"username":null,"emailAddress":"sunny@taskagile.com","password":"MyPassword"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []violationBody{{Field: "username", Rule: "required", Message: "필수 항목입니다."}}, out.Violations)
	})

	t.Run("accept-language selects english messages", func(t *testing.T) {
		h, _ := newTestServer(t)

		rec, out := do(t, h, `{"username":"a","emailAddress":"sunny@taskagile.com","password":"MyPassword"}`, "en-US,en;q=0.9")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []violationBody{{
			Field:   "username",
			Rule:    "tooShort",
			Message: "Username length must be between 2 and 50.",
		}}, out.Violations)
	})

	t.Run("malformed json", func(t *testing.T) {
		h, msg := newTestServer(t)

		rec, out := do(t, h, `{"username":`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", out.Message)
		assert.Empty(t, out.Violations)
		assert.Empty(t, msg.submitted)
	})
}
