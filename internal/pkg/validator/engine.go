package validator

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ko"
	ut "github.com/go-playground/universal-translator"
	playground "github.com/go-playground/validator/v10"
)

const (
	// LocaleKorean is the default message locale.
	LocaleKorean = "ko"
	// LocaleEnglish is the English message locale.
	LocaleEnglish = "en"
)

var (
	// ErrTranslatorNotFound indicates the requested translator is unavailable.
	ErrTranslatorNotFound = errors.New("translator not found")

	// ErrInvalidMessage indicates a message template that cannot be rendered
	// with the parameters of its constraint.
	ErrInvalidMessage = errors.New("validator: invalid message template")
)

// Validator evaluates a constraint table.
type Validator interface {
	Validate(src Source) Violations
	ValidateLocale(src Source, locales ...string) Violations
}

// Engine is the table-driven Validator. It is immutable after New.
type Engine struct {
	rules    []Constraint
	formats  map[string]FormatFunc
	uni      *ut.UniversalTranslator
	fallback ut.Translator
}

type options struct {
	locale   string
	messages map[string]map[string]string
	formats  map[string]FormatFunc
}

// Option configures an Engine.
type Option func(*options)

// WithLocale sets the default message locale. Defaults to LocaleKorean.
func WithLocale(locale string) Option {
	return func(o *options) { o.locale = locale }
}

// WithMessages registers message templates for locale, keyed by Constraint.Message.
func WithMessages(locale string, messages map[string]string) Option {
	return func(o *options) {
		if o.messages[locale] == nil {
			o.messages[locale] = make(map[string]string, len(messages))
		}
		for k, v := range messages {
			o.messages[locale][k] = v
		}
	}
}

// WithFormat registers an additional named format.
func WithFormat(name string, fn FormatFunc) Option {
	return func(o *options) { o.formats[name] = fn }
}

// New checks rules and returns an Engine evaluating them.
//
// Every constraint must be well formed and its message must render in the
// default locale; otherwise New returns an error.
func New(rules []Constraint, opts ...Option) (*Engine, error) {
	validate := playground.New(playground.WithRequiredStructEnabled())

	o := options{
		locale:   LocaleKorean,
		messages: make(map[string]map[string]string),
		formats: map[string]FormatFunc{
			FormatEmail: emailFormat(validate),
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	supported := map[string]locales.Translator{
		LocaleKorean:  ko.New(),
		LocaleEnglish: en.New(),
	}
	fallbackLocale, ok := supported[o.locale]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTranslatorNotFound, o.locale)
	}

	uni := ut.New(fallbackLocale, supported[LocaleKorean], supported[LocaleEnglish])
	fallback, _ := uni.GetTranslator(o.locale)

	for locale, messages := range o.messages {
		trans, found := uni.GetTranslator(locale)
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrTranslatorNotFound, locale)
		}
		for key, text := range messages {
			if err := trans.Add(key, text, true); err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %v", ErrInvalidMessage, locale, key, err)
			}
		}
	}

	requiredSeen := make(map[string]struct{})
	for _, c := range rules {
		if err := c.validate(o.formats); err != nil {
			return nil, err
		}
		if c.Check == CheckRequired {
			if _, dup := requiredSeen[c.Field]; dup {
				return nil, fmt.Errorf("%w: %s is required twice", ErrInvalidConstraint, c.Field)
			}
			requiredSeen[c.Field] = struct{}{}
		}

		if _, err := render(fallback, c.Message, c.params()); err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrInvalidMessage, o.locale, c.Message, err)
		}
		for locale := range o.messages {
			trans, _ := uni.GetTranslator(locale)
			if _, err := render(trans, c.Message, c.params()); err != nil && !isUnknownTranslation(err) {
				return nil, fmt.Errorf("%w: %s/%s: %v", ErrInvalidMessage, locale, c.Message, err)
			}
		}
	}

	return &Engine{
		rules:    append([]Constraint(nil), rules...),
		formats:  o.formats,
		uni:      uni,
		fallback: fallback,
	}, nil
}

// Validate evaluates the table against src with messages in the default locale.
func (e *Engine) Validate(src Source) Violations {
	return e.ValidateLocale(src)
}

// ValidateLocale evaluates the table against src with messages in the first
// supported locale of locales, falling back to the default locale.
//
// An absent field only fails its required constraint; its length and format
// constraints are skipped. Every constraint of a present field is evaluated.
func (e *Engine) ValidateLocale(src Source, locales ...string) Violations {
	trans := e.fallback
	if len(locales) > 0 {
		trans, _ = e.uni.FindTranslator(locales...)
	}

	var out Violations
	for _, c := range e.rules {
		value, present := src.Lookup(c.Field)
		if !present {
			if c.Check == CheckRequired {
				out = append(out, e.violation(trans, c, RuleRequired))
			}
			continue
		}

		switch c.Check {
		case CheckLength:
			n := utf8.RuneCountInString(value)
			if c.Min > 0 && n < c.Min {
				out = append(out, e.violation(trans, c, RuleTooShort))
			} else if c.Max > 0 && n > c.Max {
				out = append(out, e.violation(trans, c, RuleTooLong))
			}
		case CheckFormat:
			if !e.formats[c.Format](value) {
				out = append(out, e.violation(trans, c, RuleInvalidFormat))
			}
		}
	}

	return out
}

func (e *Engine) violation(trans ut.Translator, c Constraint, rule Rule) Violation {
	msg, err := render(trans, c.Message, c.params())
	if err != nil {
		// New guarantees the default locale renders every message.
		msg, _ = render(e.fallback, c.Message, c.params())
	}

	return Violation{Field: c.Field, Rule: rule, Message: msg}
}

func render(trans ut.Translator, key string, params []string) (msg string, err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidMessage, rvr)
		}
	}()

	return trans.T(key, params...)
}

func isUnknownTranslation(err error) bool {
	return errors.Is(err, ut.ErrUnknowTranslation)
}
