package router

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/shandysiswandi/taskagile/internal/pkg/goerror"
	"golang.org/x/text/language"
)

// maxBodyBytes bounds decoded request bodies.
const maxBodyBytes = 64 * 1024

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// DecodeBody decodes the JSON body into dst.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// Locales returns the base languages of the Accept-Language header,
// most preferred first. Malformed headers yield nil.
func (r *Request) Locales() []string {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		base, _ := tag.Base()
		b := base.String()
		if _, dup := seen[b]; dup || b == "und" {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}
