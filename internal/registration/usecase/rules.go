package usecase

import (
	"github.com/shandysiswandi/taskagile/internal/pkg/validator"
	"github.com/shandysiswandi/taskagile/internal/registration/entity"
)

const (
	UsernameMinLength     = 2
	UsernameMaxLength     = 50
	EmailAddressMaxLength = 100
	PasswordMinLength     = 6
	PasswordMaxLength     = 30
)

const (
	msgRequired           = "registration.required"
	msgUsernameLength     = "registration.username.length"
	msgEmailAddressFormat = "registration.email_address.format"
	msgEmailAddressLength = "registration.email_address.length"
	msgPasswordLength     = "registration.password.length"
)

var registrationRules = []validator.Constraint{
	{Field: entity.FieldUsername, Check: validator.CheckRequired, Message: msgRequired},
	{Field: entity.FieldUsername, Check: validator.CheckLength, Min: UsernameMinLength, Max: UsernameMaxLength, Message: msgUsernameLength},

	{Field: entity.FieldEmailAddress, Check: validator.CheckRequired, Message: msgRequired},
	{Field: entity.FieldEmailAddress, Check: validator.CheckFormat, Format: validator.FormatEmail, Message: msgEmailAddressFormat},
	{Field: entity.FieldEmailAddress, Check: validator.CheckLength, Max: EmailAddressMaxLength, Message: msgEmailAddressLength},

	{Field: entity.FieldPassword, Check: validator.CheckRequired, Message: msgRequired},
	{Field: entity.FieldPassword, Check: validator.CheckLength, Min: PasswordMinLength, Max: PasswordMaxLength, Message: msgPasswordLength},
}

var registrationMessagesKO = map[string]string{
	msgRequired:           "필수 항목입니다.",
	msgUsernameLength:     "유저 이름은 최소 {0}글자에서 {1}글자 사이어야 합니다.",
	msgEmailAddressFormat: "올바른 이메일 주소가 아닙니다.",
	msgEmailAddressLength: "이메일 주소는 최대 {0}글자 입니다.",
	msgPasswordLength:     "비밀번호는 최소 {0}글자에서 {1}글자 사이어야 합니다.",
}

var registrationMessagesEN = map[string]string{
	msgRequired:           "This field is required.",
	msgUsernameLength:     "Username length must be between {0} and {1}.",
	msgEmailAddressFormat: "Email address is not well-formed.",
	msgEmailAddressLength: "Email address must be at most {0} characters.",
	msgPasswordLength:     "Password length must be between {0} and {1}.",
}

// NewValidator returns the registration payload validator.
//
// locale selects the default message locale; an empty value keeps Korean.
func NewValidator(locale string) (*validator.Engine, error) {
	opts := []validator.Option{
		validator.WithMessages(validator.LocaleKorean, registrationMessagesKO),
		validator.WithMessages(validator.LocaleEnglish, registrationMessagesEN),
	}
	if locale != "" {
		opts = append(opts, validator.WithLocale(locale))
	}

	return validator.New(registrationRules, opts...)
}
