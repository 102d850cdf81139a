package transport

import (
	"net/http"

	"github.com/kappaml/kappaml-go/pkg/constants"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	if apiKey == "" {
		return
	}
	header := a.Header
	if header == "" {
		header = constants.APIKeyHeader
	}
	req.Header.Set(header, apiKey)
}

// APIKeyAuth returns the authenticator the KappaML API expects.
func APIKeyAuth() Authenticator {
	return &HeaderAuth{Header: constants.APIKeyHeader}
}
