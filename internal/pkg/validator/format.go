package validator

import (
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// FormatEmail is the name of the built-in email address format.
const FormatEmail = "email"

// FormatFunc reports whether value is well formed.
type FormatFunc func(value string) bool

func emailFormat(validate *playground.Validate) FormatFunc {
	return func(value string) bool {
		if err := validate.Var(value, "email"); err != nil {
			return false
		}

		at := strings.LastIndexByte(value, '@')
		return at > 0 && strings.Contains(value[at+1:], ".")
	}
}
