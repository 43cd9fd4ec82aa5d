package validator

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = []Constraint{
	{Field: "name", Check: CheckRequired, Message: "required"},
	{Field: "name", Check: CheckLength, Min: 2, Max: 5, Message: "name_length"},
	{Field: "mail", Check: CheckRequired, Message: "required"},
	{Field: "mail", Check: CheckFormat, Format: FormatEmail, Message: "mail_format"},
	{Field: "mail", Check: CheckLength, Max: 20, Message: "mail_length"},
}

func testMessages() []Option {
	return []Option{
		WithMessages(LocaleKorean, map[string]string{
			"required":    "필수 항목입니다.",
			"name_length": "이름은 최소 {0}글자에서 {1}글자 사이어야 합니다.",
			"mail_format": "올바른 이메일 주소가 아닙니다.",
			"mail_length": "이메일 주소는 최대 {0}글자 입니다.",
		}),
		WithMessages(LocaleEnglish, map[string]string{
			"required":    "must not be null",
			"name_length": "length must be between {0} and {1}",
			"mail_format": "must be a well-formed email address",
		}),
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	e, err := New(testRules, testMessages()...)
	require.NoError(t, err)
	return e
}

func TestEngine_Validate(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name  string
		src   Values
		want  Violations
		field string
	}{
		{
			name: "all absent yields one required per field",
			src:  Values{},
			want: Violations{
				{Field: "name", Rule: RuleRequired},
				{Field: "mail", Rule: RuleRequired},
			},
		},
		{
			name: "valid",
			src:  Values{"name": "abc", "mail": "a@b.io"},
		},
		{
			name: "lower bound inclusive",
			src:  Values{"name": "ab", "mail": "a@b.io"},
		},
		{
			name: "upper bound inclusive",
			src:  Values{"name": "abcde", "mail": "a@b.io"},
		},
		{
			name: "empty string is too short, not required",
			src:  Values{"name": "", "mail": "a@b.io"},
			want: Violations{{Field: "name", Rule: RuleTooShort}},
		},
		{
			name: "too long",
			src:  Values{"name": "abcdef", "mail": "a@b.io"},
			want: Violations{{Field: "name", Rule: RuleTooLong}},
		},
		{
			name: "length counts code points",
			src:  Values{"name": "가나다라마", "mail": "a@b.io"},
		},
		{
			name: "malformed and too long are independent",
			src:  Values{"name": "abc", "mail": strings.Repeat("x", 21)},
			want: Violations{
				{Field: "mail", Rule: RuleInvalidFormat},
				{Field: "mail", Rule: RuleTooLong},
			},
		},
		{
			name: "domain without dot is malformed",
			src:  Values{"name": "abc", "mail": "a@localhost"},
			want: Violations{{Field: "mail", Rule: RuleInvalidFormat}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Validate(tt.src)
			assert.Truef(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestEngine_ValidateLocale(t *testing.T) {
	e := newTestEngine(t)
	src := Values{"name": "a", "mail": "a@b.io"}

	ko := e.Validate(src)
	require.Len(t, ko, 1)
	assert.Equal(t, "이름은 최소 2글자에서 5글자 사이어야 합니다.", ko[0].Message)

	en := e.ValidateLocale(src, "en")
	require.Len(t, en, 1)
	assert.Equal(t, "length must be between 2 and 5", en[0].Message)

	unknown := e.ValidateLocale(src, "fr", "de")
	require.Len(t, unknown, 1)
	assert.Equal(t, ko[0].Message, unknown[0].Message)
}

func TestEngine_ValidateLocale_MissingTranslationFallsBack(t *testing.T) {
	e := newTestEngine(t)

	got := e.ValidateLocale(Values{"name": "abc", "mail": "a@" + strings.Repeat("b", 20) + ".io"}, "en")
	require.Len(t, got, 1)
	assert.Equal(t, RuleTooLong, got[0].Rule)
	assert.Equal(t, "이메일 주소는 최대 20글자 입니다.", got[0].Message)
}

func TestEngine_Idempotent(t *testing.T) {
	e := newTestEngine(t)
	src := Values{"name": "a", "mail": "nope"}

	first := e.Validate(src)
	second := e.Validate(src)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first, second)
}

func TestEngine_Concurrent(t *testing.T) {
	e := newTestEngine(t)
	src := Values{"mail": "nope"}
	want := e.Validate(src)

	var wg sync.WaitGroup
	for range 32 {
		wg.Go(func() {
			assert.True(t, want.Equal(e.Validate(src)))
		})
	}
	wg.Wait()
}

func TestNew_RejectsInvalidTables(t *testing.T) {
	messages := WithMessages(LocaleKorean, map[string]string{"m": "메시지", "two": "{0} {1}"})

	tests := []struct {
		name  string
		rules []Constraint
		opts  []Option
		err   error
	}{
		{
			name:  "min greater than max",
			rules: []Constraint{{Field: "f", Check: CheckLength, Min: 10, Max: 2, Message: "m"}},
			err:   ErrInvalidConstraint,
		},
		{
			name:  "negative bound",
			rules: []Constraint{{Field: "f", Check: CheckLength, Min: -1, Max: 2, Message: "m"}},
			err:   ErrInvalidConstraint,
		},
		{
			name:  "unbounded length",
			rules: []Constraint{{Field: "f", Check: CheckLength, Message: "m"}},
			err:   ErrInvalidConstraint,
		},
		{
			name:  "unknown format",
			rules: []Constraint{{Field: "f", Check: CheckFormat, Format: "phone", Message: "m"}},
			err:   ErrInvalidConstraint,
		},
		{
			name:  "empty field",
			rules: []Constraint{{Check: CheckRequired, Message: "m"}},
			err:   ErrInvalidConstraint,
		},
		{
			name:  "unknown check",
			rules: []Constraint{{Field: "f", Check: Check(99), Message: "m"}},
			err:   ErrInvalidConstraint,
		},
		{
			name: "duplicate required",
			rules: []Constraint{
				{Field: "f", Check: CheckRequired, Message: "m"},
				{Field: "f", Check: CheckRequired, Message: "m"},
			},
			err: ErrInvalidConstraint,
		},
		{
			name:  "missing default message",
			rules: []Constraint{{Field: "f", Check: CheckRequired, Message: "absent"}},
			err:   ErrInvalidMessage,
		},
		{
			name:  "message needs more bounds than the constraint has",
			rules: []Constraint{{Field: "f", Check: CheckLength, Max: 3, Message: "two"}},
			err:   ErrInvalidMessage,
		},
		{
			name:  "unsupported default locale",
			rules: []Constraint{{Field: "f", Check: CheckRequired, Message: "m"}},
			opts:  []Option{WithLocale("xx")},
			err:   ErrTranslatorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rules, append([]Option{messages}, tt.opts...)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNew_CustomFormatAndLocale(t *testing.T) {
	rules := []Constraint{{Field: "code", Check: CheckFormat, Format: "upper", Message: "upper"}}

	e, err := New(rules,
		WithLocale(LocaleEnglish),
		WithMessages(LocaleEnglish, map[string]string{"upper": "must be upper case"}),
		WithFormat("upper", func(v string) bool { return v != "" && strings.ToUpper(v) == v }),
	)
	require.NoError(t, err)

	got := e.Validate(Values{"code": "abc"})
	require.Len(t, got, 1)
	assert.Equal(t, Violation{Field: "code", Rule: RuleInvalidFormat, Message: "must be upper case"}, got[0])
	assert.Empty(t, e.Validate(Values{"code": "ABC"}))
	assert.Empty(t, e.Validate(Values{}))
}

func TestViolations_Helpers(t *testing.T) {
	vs := Violations{
		{Field: "a", Rule: RuleTooLong, Message: "x"},
		{Field: "a", Rule: RuleInvalidFormat, Message: "y"},
		{Field: "b", Rule: RuleRequired, Message: "z"},
	}

	assert.True(t, vs.Has("a"))
	assert.False(t, vs.Has("c"))
	assert.Len(t, vs.Field("a"), 2)
	assert.Equal(t, []Rule{RuleRequired}, vs.Rules("b"))
	assert.True(t, vs.Equal(Violations{vs[2], vs[1], vs[0]}))
	assert.False(t, vs.Equal(vs[:2]))
	assert.False(t, vs.Equal(Violations{vs[0], vs[0], vs[2]}))
	assert.Contains(t, vs.Error(), `"field":"a"`)
	assert.Equal(t, "validation error", Violations{}.Error())
}
