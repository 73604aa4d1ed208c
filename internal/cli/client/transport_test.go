package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// emptyToken is a TokenSource for a logged-out session
type emptyToken struct{}

func (emptyToken) Token() string { return "" }

func TestTransport_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer portal.Close()

	c := New(portal.URL, 0, staticToken("tok-abc"), nil)
	if _, err := c.ListSuppliers(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotAuth != "Bearer tok-abc" {
		t.Errorf("expected Bearer tok-abc, got %q", gotAuth)
	}
}

func TestTransport_NoTokenSendsUnmodified(t *testing.T) {
	var gotAuth string
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer portal.Close()

	c := New(portal.URL, 0, emptyToken{}, nil)
	if _, err := c.ListSuppliers(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestTransport_RequestIDHeader(t *testing.T) {
	ids := map[string]bool{}
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[r.Header.Get("X-Request-ID")] = true
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer portal.Close()

	c := New(portal.URL, 0, nil, nil)
	for i := 0; i < 3; i++ {
		if _, err := c.ListStores(context.Background()); err != nil {
			t.Fatalf("request failed: %v", err)
		}
	}

	if len(ids) != 3 || ids[""] {
		t.Errorf("expected 3 distinct non-empty request IDs, got %v", ids)
	}
}

func TestTransport_UnauthorizedHandlerFiresOnce(t *testing.T) {
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid or expired token"}`))
	}))
	defer portal.Close()

	var calls atomic.Int32
	c := New(portal.URL, 0, staticToken("stale"), func(detail string) {
		calls.Add(1)
		if detail != "Invalid or expired token" {
			t.Errorf("unexpected detail: %q", detail)
		}
	})

	const concurrent = 10
	var wg sync.WaitGroup
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ListProducts(context.Background(), ListOptions{})
			if !errors.Is(err, ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected handler to fire exactly once, fired %d times", calls.Load())
	}
}

func TestTransport_401WithoutTokenDoesNotFireHandler(t *testing.T) {
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Not authenticated"}`))
	}))
	defer portal.Close()

	var calls atomic.Int32
	c := New(portal.URL, 0, emptyToken{}, func(string) {
		calls.Add(1)
	})

	_, err := c.ListProducts(context.Background(), ListOptions{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}

	if calls.Load() != 0 {
		t.Error("a 401 on an unauthenticated request is not a session expiry")
	}
}

func TestTransport_ErrorBodyStillReadableAfterPeek(t *testing.T) {
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid or expired token"}`))
	}))
	defer portal.Close()

	c := New(portal.URL, 0, staticToken("stale"), func(string) {})

	_, err := c.ListProducts(context.Background(), ListOptions{})

	// The caller still sees the server's detail even though the transport
	// read the body to extract it
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Detail != "Invalid or expired token" {
		t.Errorf("expected detail preserved for caller, got %q", apiErr.Detail)
	}
}
