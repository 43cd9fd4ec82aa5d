package entity

const (
	FieldUsername     = "username"
	FieldEmailAddress = "emailAddress"
	FieldPassword     = "password"
)

// RegistrationRequest is the registration payload under validation.
//
// Each field is either present (possibly empty) or absent. The value is
// immutable; construct it once with NewRegistrationRequest.
type RegistrationRequest struct {
	username     *string
	emailAddress *string
	password     *string
}

// NewRegistrationRequest builds a request. A nil argument marks the field absent.
func NewRegistrationRequest(username, emailAddress, password *string) RegistrationRequest {
	return RegistrationRequest{
		username:     clone(username),
		emailAddress: clone(emailAddress),
		password:     clone(password),
	}
}

// Username returns the username and whether it is present.
func (r RegistrationRequest) Username() (string, bool) { return deref(r.username) }

// EmailAddress returns the email address and whether it is present.
func (r RegistrationRequest) EmailAddress() (string, bool) { return deref(r.emailAddress) }

// Password returns the password and whether it is present.
func (r RegistrationRequest) Password() (string, bool) { return deref(r.password) }

// Lookup returns the value of the named field and whether it is present.
func (r RegistrationRequest) Lookup(field string) (string, bool) {
	switch field {
	case FieldUsername:
		return r.Username()
	case FieldEmailAddress:
		return r.EmailAddress()
	case FieldPassword:
		return r.Password()
	default:
		return "", false
	}
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
