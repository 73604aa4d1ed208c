package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storekeep-dev/storekeep/internal/cli/client"
	"github.com/storekeep-dev/storekeep/internal/cli/credstore"
)

// expiredTokenPortal accepts one seeded login but rejects every protected
// request, as a backend does once a token expires
func expiredTokenPortal(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"short-lived","token_type":"bearer","user_role":"admin","store_id":null,"store_name":null}`))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid or expired token"}`))
		}
	}))
}

func TestForcedLogoutOn401(t *testing.T) {
	portal := expiredTokenPortal(t)
	defer portal.Close()

	store := credstore.NewMem()

	loginClient := client.New(portal.URL, 0, nil, nil)
	sess := New(store, loginClient)

	_, err := sess.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	var logouts atomic.Int32
	var details []string
	var mu sync.Mutex

	dataClient := client.New(portal.URL, 0, sess, func(detail string) {
		logouts.Add(1)
		mu.Lock()
		details = append(details, detail)
		mu.Unlock()
		require.NoError(t, sess.Logout())
	})

	// All concurrent requests fail with 401; only the first observed
	// failure may log out and notify
	const concurrent = 8
	var wg sync.WaitGroup
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := dataClient.ListProducts(context.Background(), client.ListOptions{})
			require.ErrorIs(t, err, client.ErrUnauthorized)
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, logouts.Load(), "exactly one logout for N concurrent 401s")
	require.Equal(t, []string{"Invalid or expired token"}, details)
	require.False(t, sess.IsAuthenticated())

	_, ok, _ := store.Get(credstore.KeyToken)
	require.False(t, ok)
}

func TestRequestAfterLogoutCarriesNoAuthHeader(t *testing.T) {
	var sawAuth atomic.Bool
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			sawAuth.Store(true)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer portal.Close()

	store := credstore.NewMem()
	sess := New(store, &fakeAuth{})

	_, err := sess.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, sess.Logout())

	dataClient := client.New(portal.URL, 0, sess, nil)
	_, err = dataClient.ListProducts(context.Background(), client.ListOptions{})
	require.NoError(t, err)

	require.False(t, sawAuth.Load(), "logged-out session must not send a bearer token")
}
