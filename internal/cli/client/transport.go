package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

// TokenSource supplies the current bearer token, empty when logged out
type TokenSource interface {
	Token() string
}

// authTransport decorates an http.RoundTripper with the session contract:
// attach the bearer token on the way out when one exists, and report the
// first 401 observed on an authenticated request to the unauthorized
// handler. Requests sent without a token are passed through untouched; the
// server rejecting those is not a session expiry.
type authTransport struct {
	base           http.RoundTripper
	creds          TokenSource
	onUnauthorized func(detail string)

	// handled latches after the first 401 so concurrent failing requests
	// trigger a single logout
	handled atomic.Bool
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	requestID := ulid.Make().String()
	out.Header.Set("X-Request-ID", requestID)

	authenticated := false
	if t.creds != nil {
		if token := t.creds.Token(); token != "" {
			out.Header.Set("Authorization", "Bearer "+token)
			authenticated = true
		}
	}

	log.Debug().
		Str("request_id", requestID).
		Str("method", out.Method).
		Str("path", out.URL.Path).
		Bool("authenticated", authenticated).
		Msg("sending portal request")

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		detail := peekDetail(resp)
		if t.onUnauthorized != nil && t.handled.CompareAndSwap(false, true) {
			log.Debug().
				Str("request_id", requestID).
				Str("detail", detail).
				Msg("token rejected, clearing session")
			t.onUnauthorized(detail)
		}
	}

	return resp, nil
}

// peekDetail reads the error detail from a response body without consuming
// it for downstream readers
func peekDetail(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return ""
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Detail
}
