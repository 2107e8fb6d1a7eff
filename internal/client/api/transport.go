// Package api is the HTTP client for the brandkit backend: a thin typed SDK
// over net/http plus the request middleware that attaches credentials and
// reacts to session expiry.
package api

import (
	"net/http"

	"github.com/dkrasnova/brandkit/internal/common"
)

// AuthTransport intercepts outgoing requests. When a current identity
// exists, it obtains a credential and attaches it as a bearer header before
// forwarding; otherwise the request passes through unmodified.
//
// On the response path, exactly HTTP 401 triggers the OnSessionExpired hook
// (once per response). 403 is deliberately not treated as session expiry: it
// signals an authorization failure, not an authentication one. The transport
// never retries the failed request and never refreshes beyond the single
// best-effort token attach.
type AuthTransport struct {
	Base http.RoundTripper

	// Authenticated reports whether an identity snapshot currently exists.
	Authenticated func() bool

	// Token obtains the credential to attach. A failing Token forwards the
	// request unmodified; the server's 401 then drives invalidation.
	Token func(req *http.Request) (string, error)

	// OnSessionExpired runs on every 401 response.
	OnSessionExpired func()
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.Authenticated != nil && t.Authenticated() && t.Token != nil {
		if tok, err := t.Token(req); err == nil && tok != "" {
			req = req.Clone(req.Context())
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
		}
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.OnSessionExpired != nil {
		t.OnSessionExpired()
	}
	return resp, nil
}
