package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/taskagile/internal/pkg/clock"
	"github.com/shandysiswandi/taskagile/internal/pkg/goerror"
	"github.com/shandysiswandi/taskagile/internal/pkg/goroutine"
	"github.com/shandysiswandi/taskagile/internal/pkg/idempotency"
	"github.com/shandysiswandi/taskagile/internal/pkg/instrument"
	"github.com/shandysiswandi/taskagile/internal/pkg/validator"
	"github.com/shandysiswandi/taskagile/internal/registration/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessaging struct {
	mu        sync.Mutex
	submitted []RegistrationSubmittedEvent
	rejected  []RegistrationRejectedEvent
	err       error
}

func (f *fakeMessaging) PublishRegistrationSubmitted(_ context.Context, msg RegistrationSubmittedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.submitted = append(f.submitted, msg)
	return nil
}

func (f *fakeMessaging) PublishRegistrationRejected(_ context.Context, msg RegistrationRejectedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rejected = append(f.rejected, msg)
	return nil
}

var testNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

// fakeIdempotency keeps completed keys in memory; inFlight marks keys as busy.
type fakeIdempotency struct {
	done     map[string]bool
	inFlight map[string]bool
}

func (f *fakeIdempotency) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	if f.inFlight[key] {
		return idempotency.ErrInProgress
	}
	if f.done[key] {
		return idempotency.ErrCompleted
	}
	if err := fn(ctx); err != nil {
		return err
	}
	f.done[key] = true
	return nil
}

func newTestUsecase(t *testing.T, msg *fakeMessaging) *Usecase {
	t.Helper()
	uc, _ := newTestUsecaseWithManager(t, msg)
	return uc
}

func newTestUsecaseWithManager(t *testing.T, msg *fakeMessaging) (*Usecase, *goroutine.Manager) {
	t.Helper()

	v, err := NewValidator("")
	require.NoError(t, err)

	g := goroutine.NewManager(4)
	return New(Dependency{
		RepoMessaging: msg,
		Validator:     v,
		Idempotency:   &fakeIdempotency{done: map[string]bool{}, inFlight: map[string]bool{"registration:busy": true}},
		Goroutine:     g,
		Clock:         clock.Fixed(testNow),
		Instrument:    instrument.NewNoop(),
	}), g
}

func ptr(s string) *string { return &s }

func request(username, emailAddress, password *string) entity.RegistrationRequest {
	return entity.NewRegistrationRequest(username, emailAddress, password)
}

func validRequest() entity.RegistrationRequest {
	return request(ptr("MyUsername"), ptr("sunny@taskagile.com"), ptr("MyPassword"))
}

func TestUsecase_Validate(t *testing.T) {
	uc := newTestUsecase(t, &fakeMessaging{})
	ctx := context.Background()

	emailOf101 := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 32) + ".com"
	emailOf100 := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 31) + ".com"

	tests := []struct {
		name string
		req  entity.RegistrationRequest
		want validator.Violations
	}{
		{
			name: "blank payload",
			req:  request(nil, nil, nil),
			want: validator.Violations{
				{Field: entity.FieldUsername, Rule: validator.RuleRequired},
				{Field: entity.FieldEmailAddress, Rule: validator.RuleRequired},
				{Field: entity.FieldPassword, Rule: validator.RuleRequired},
			},
		},
		{
			name: "well-formed payload",
			req:  validRequest(),
		},
		{
			name: "email address longer than 100",
			req:  request(ptr("MyUsername"), ptr(emailOf101), ptr("MyPassword")),
			want: validator.Violations{{Field: entity.FieldEmailAddress, Rule: validator.RuleTooLong}},
		},
		{
			name: "email address of exactly 100",
			req:  request(ptr("MyUsername"), ptr(emailOf100), ptr("MyPassword")),
		},
		{
			name: "malformed email address",
			req:  request(ptr("MyUsername"), ptr("bad-email-address"), ptr("MyPassword")),
			want: validator.Violations{{Field: entity.FieldEmailAddress, Rule: validator.RuleInvalidFormat}},
		},
		{
			name: "malformed email address longer than 100",
			req:  request(ptr("MyUsername"), ptr(strings.Repeat("x", 101)), ptr("MyPassword")),
			want: validator.Violations{
				{Field: entity.FieldEmailAddress, Rule: validator.RuleInvalidFormat},
				{Field: entity.FieldEmailAddress, Rule: validator.RuleTooLong},
			},
		},
		{
			name: "username shorter than 2",
			req:  request(ptr("a"), ptr("sunny@taskagile.com"), ptr("MyPassword")),
			want: validator.Violations{{Field: entity.FieldUsername, Rule: validator.RuleTooShort}},
		},
		{
			name: "empty username",
			req:  request(ptr(""), ptr("sunny@taskagile.com"), ptr("MyPassword")),
			want: validator.Violations{{Field: entity.FieldUsername, Rule: validator.RuleTooShort}},
		},
		{
			name: "username longer than 50",
			req:  request(ptr(strings.Repeat("u", 51)), ptr("sunny@taskagile.com"), ptr("MyPassword")),
			want: validator.Violations{{Field: entity.FieldUsername, Rule: validator.RuleTooLong}},
		},
		{
			name: "username of exactly 2",
			req:  request(ptr("ab"), ptr("sunny@taskagile.com"), ptr("MyPassword")),
		},
		{
			name: "username of exactly 50",
			req:  request(ptr(strings.Repeat("u", 50)), ptr("sunny@taskagile.com"), ptr("MyPassword")),
		},
		{
			name: "password shorter than 6",
			req:  request(ptr("MyUsername"), ptr("sunny@taskagile.com"), ptr("12345")),
			want: validator.Violations{{Field: entity.FieldPassword, Rule: validator.RuleTooShort}},
		},
		{
			name: "password longer than 30",
			req:  request(ptr("MyUsername"), ptr("sunny@taskagile.com"), ptr(strings.Repeat("p", 31))),
			want: validator.Violations{{Field: entity.FieldPassword, Rule: validator.RuleTooLong}},
		},
		{
			name: "password of exactly 6",
			req:  request(ptr("MyUsername"), ptr("sunny@taskagile.com"), ptr("123456")),
		},
		{
			name: "password of exactly 30",
			req:  request(ptr("MyUsername"), ptr("sunny@taskagile.com"), ptr(strings.Repeat("p", 30))),
		},
		{
			name: "absent field skips its length rule",
			req:  request(ptr("a"), nil, ptr("MyPassword")),
			want: validator.Violations{
				{Field: entity.FieldUsername, Rule: validator.RuleTooShort},
				{Field: entity.FieldEmailAddress, Rule: validator.RuleRequired},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uc.Validate(ctx, ValidateInput{Request: tt.req})
			assert.Truef(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestUsecase_Validate_Messages(t *testing.T) {
	uc := newTestUsecase(t, &fakeMessaging{})
	req := request(ptr("a"), ptr("sunny@taskagile.com"), ptr("MyPassword"))

	ko := uc.Validate(context.Background(), ValidateInput{Request: req})
	require.Len(t, ko, 1)
	assert.Equal(t, "유저 이름은 최소 2글자에서 50글자 사이어야 합니다.", ko[0].Message)

	en := uc.Validate(context.Background(), ValidateInput{Request: req, Locales: []string{"en"}})
	require.Len(t, en, 1)
	assert.Equal(t, "Username length must be between 2 and 50.", en[0].Message)
}

func TestUsecase_Validate_Idempotent(t *testing.T) {
	uc := newTestUsecase(t, &fakeMessaging{})
	req := request(ptr("a"), ptr("bad"), nil)

	first := uc.Validate(context.Background(), ValidateInput{Request: req})
	second := uc.Validate(context.Background(), ValidateInput{Request: req})

	assert.Len(t, first, 3)
	assert.True(t, first.Equal(second))
}

func TestUsecase_Submit(t *testing.T) {
	t.Run("accepted payload is published", func(t *testing.T) {
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, msg)

		out, err := uc.Submit(context.Background(), SubmitInput{Request: validRequest()})
		require.NoError(t, err)
		assert.Equal(t, &SubmitOutput{Username: "MyUsername", EmailAddress: "sunny@taskagile.com"}, out)

		require.Len(t, msg.submitted, 1)
		assert.Equal(t, RegistrationSubmittedEvent{
			Username:     "MyUsername",
			EmailAddress: "sunny@taskagile.com",
			Password:     "MyPassword",
			OccurredAt:   testNow,
		}, msg.submitted[0])
		assert.Empty(t, msg.rejected)
	})

	t.Run("violations are returned as validation error", func(t *testing.T) {
		msg := &fakeMessaging{}
		uc, g := newTestUsecaseWithManager(t, msg)

		out, err := uc.Submit(context.Background(), SubmitInput{Request: request(nil, nil, nil)})
		require.Error(t, err)
		assert.Nil(t, out)
		require.NoError(t, g.Wait())

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())

		var vs validator.Violations
		require.ErrorAs(t, err, &vs)
		assert.Len(t, vs, 3)

		assert.Empty(t, msg.submitted)
		require.Len(t, msg.rejected, 1)
		assert.True(t, vs.Equal(msg.rejected[0].Violations))
		assert.Equal(t, testNow, msg.rejected[0].OccurredAt)
	})

	t.Run("rejected publish failure does not hide violations", func(t *testing.T) {
		uc, g := newTestUsecaseWithManager(t, &fakeMessaging{err: errors.New("broker down")})

		_, err := uc.Submit(context.Background(), SubmitInput{Request: request(nil, nil, nil)})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
		assert.Error(t, g.Wait())
	})

	t.Run("submitted publish failure is a server error", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeMessaging{err: errors.New("broker down")})

		out, err := uc.Submit(context.Background(), SubmitInput{Request: validRequest()})
		assert.Nil(t, out)

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInternal, gerr.Code())
	})

	t.Run("idempotency key publishes once", func(t *testing.T) {
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, msg)
		in := SubmitInput{Request: validRequest(), IdempotencyKey: "k-1"}

		first, err := uc.Submit(context.Background(), in)
		require.NoError(t, err)
		second, err := uc.Submit(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, msg.submitted, 1)
	})

	t.Run("idempotency key in progress is a conflict", func(t *testing.T) {
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, msg)

		out, err := uc.Submit(context.Background(), SubmitInput{Request: validRequest(), IdempotencyKey: "busy"})
		assert.Nil(t, out)

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeConflict, gerr.Code())
		assert.Empty(t, msg.submitted)
	})

	t.Run("invalid payload never claims the idempotency key", func(t *testing.T) {
		msg := &fakeMessaging{}
		uc, g := newTestUsecaseWithManager(t, msg)
		in := SubmitInput{Request: request(nil, nil, nil), IdempotencyKey: "k-2"}

		_, err := uc.Submit(context.Background(), in)
		require.Error(t, err)
		require.NoError(t, g.Wait())

		in.Request = validRequest()
		_, err = uc.Submit(context.Background(), in)
		require.NoError(t, err)
		assert.Len(t, msg.submitted, 1)
	})
}
