package gate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/planetadeleste/avkit/pkg/gate"
	"github.com/planetadeleste/avkit/pkg/notify"
	"github.com/planetadeleste/avkit/pkg/sessionstore"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Success(string) {}
func (n *recordingNotifier) Info(string)    {}

func (n *recordingNotifier) Error(text string) {
	n.mu.Lock()
	n.messages = append(n.messages, text)
	n.mu.Unlock()
}

func (n *recordingNotifier) errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func newRecord(t *testing.T) *sessionstore.Record {
	t.Helper()
	return sessionstore.NewRecord(sessionstore.NewMemoryStore())
}

func TestGate_HeaderInjection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var seen http.Header
	var seenPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		seenPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := sessionstore.NewMemoryStore()
	record := sessionstore.NewRecord(store)
	require.NoError(t, record.SaveToken(ctx, &oauth2.Token{AccessToken: "tok1", Expiry: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Set(ctx, sessionstore.KeyCompanyID, "5"))
	require.NoError(t, store.Set(ctx, sessionstore.KeyOfficeID, "2"))
	record.SetCSRF("csrf1")

	g, err := gate.New(server.URL, record)
	require.NoError(t, err)
	client := &http.Client{Transport: g}

	t.Run("injects auth, tenant, csrf and environment headers", func(t *testing.T) {
		resp, err := client.Get(server.URL + "/orders")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, "Bearer tok1", seen.Get("Authorization"))
		assert.Equal(t, "5", seen.Get("X-AV-CID"))
		assert.Equal(t, "2", seen.Get("X-AV-OID"))
		assert.Equal(t, "csrf1", seen.Get("X-CSRF-TOKEN"))
		assert.Equal(t, "backend", seen.Get("X-ENV"))
		assert.NotEmpty(t, seen.Get("X-Request-ID"))
		assert.Empty(t, seen.Get("X-REFRESH-TOKEN"), "refresh token only travels to the logout endpoint")
	})

	t.Run("adds the refresh token for the logout endpoint", func(t *testing.T) {
		resp, err := client.Post(server.URL+"/auth/logout", "application/json", nil)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, "tok1", seen.Get("X-REFRESH-TOKEN"))
	})

	t.Run("skips injection for foreign origins", func(t *testing.T) {
		var foreign http.Header
		other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			foreign = r.Header.Clone()
		}))
		defer other.Close()

		resp, err := client.Get(other.URL + "/external")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Empty(t, foreign.Get("Authorization"))
		assert.Empty(t, foreign.Get("X-ENV"))
	})

	t.Run("strips a duplicated base prefix", func(t *testing.T) {
		base, err := url.Parse(server.URL)
		require.NoError(t, err)
		base.Path = "/api/v1"

		prefixed, err := gate.New(base.String(), record)
		require.NoError(t, err)
		prefixedClient := &http.Client{Transport: prefixed}

		resp, err := prefixedClient.Get(server.URL + "/api/v1/api/v1/orders")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, "/api/v1/orders", seenPath)
	})
}

func TestGate_ConcurrencyCeiling(t *testing.T) {
	t.Parallel()

	const ceiling = 3
	const total = 20

	var current, peak atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		current.Add(-1)
	}))
	defer server.Close()

	g, err := gate.New(server.URL, newRecord(t), gate.WithMaxConcurrent(ceiling))
	require.NoError(t, err)
	client := &http.Client{Transport: g}

	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(server.URL + "/work")
			if err == nil {
				_ = resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(ceiling))
	assert.Equal(t, int64(0), g.InFlight(), "in-flight counter drains to zero")
}

func TestGate_AdmissionCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	g, err := gate.New(server.URL, newRecord(t), gate.WithMaxConcurrent(1))
	require.NoError(t, err)
	client := &http.Client{Transport: g}

	// Occupy the single slot.
	go func() {
		resp, err := client.Get(server.URL + "/slow")
		if err == nil {
			_ = resp.Body.Close()
		}
	}()

	require.Eventually(t, func() bool { return g.InFlight() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/waiting", nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGate_ErrorClassification(t *testing.T) {
	t.Parallel()

	newServer := func(status int, body string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
	}

	t.Run("401 outside the auth lifecycle forces logout", func(t *testing.T) {
		t.Parallel()
		server := newServer(http.StatusUnauthorized, `{"status":false,"error":"token expired"}`)
		defer server.Close()

		var forced atomic.Bool
		notifier := &recordingNotifier{}
		g, err := gate.New(server.URL, newRecord(t),
			gate.WithNotifier(notifier),
			gate.WithOnAuthReject(func() { forced.Store(true) }),
		)
		require.NoError(t, err)

		resp, err := (&http.Client{Transport: g}).Get(server.URL + "/api/orders")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.True(t, forced.Load())
		assert.Equal(t, []string{"token expired"}, notifier.errors())
	})

	t.Run("401 from the login endpoint is exempt", func(t *testing.T) {
		t.Parallel()
		server := newServer(http.StatusUnauthorized, `{"status":false,"message":"invalid_credentials"}`)
		defer server.Close()

		var forced atomic.Bool
		notifier := &recordingNotifier{}
		g, err := gate.New(server.URL, newRecord(t),
			gate.WithNotifier(notifier),
			gate.WithOnAuthReject(func() { forced.Store(true) }),
		)
		require.NoError(t, err)

		resp, err := (&http.Client{Transport: g}).Post(server.URL+"/auth/login", "application/json", nil)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.False(t, forced.Load(), "auth lifecycle endpoints never force logout")
		assert.Equal(t, []string{"invalid_credentials"}, notifier.errors())
	})

	t.Run("500 surfaces the message without forcing logout", func(t *testing.T) {
		t.Parallel()
		server := newServer(http.StatusInternalServerError, `{"status":false,"message":"upstream down"}`)
		defer server.Close()

		var forced atomic.Bool
		notifier := &recordingNotifier{}
		g, err := gate.New(server.URL, newRecord(t),
			gate.WithNotifier(notifier),
			gate.WithOnAuthReject(func() { forced.Store(true) }),
		)
		require.NoError(t, err)

		resp, err := (&http.Client{Transport: g}).Get(server.URL + "/api/orders")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.False(t, forced.Load())
		assert.Equal(t, []string{"upstream down"}, notifier.errors())
	})

	t.Run("body stays readable after classification", func(t *testing.T) {
		t.Parallel()
		server := newServer(http.StatusBadRequest, `{"status":false,"error":"bad input"}`)
		defer server.Close()

		g, err := gate.New(server.URL, newRecord(t))
		require.NoError(t, err)

		resp, err := (&http.Client{Transport: g}).Get(server.URL + "/api/orders")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		var envelope struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, "bad input", envelope.Error)
	})

	t.Run("empty and non-envelope bodies notify nothing", func(t *testing.T) {
		t.Parallel()
		server := newServer(http.StatusBadGateway, `<html>gateway error</html>`)
		defer server.Close()

		notifier := &recordingNotifier{}
		g, err := gate.New(server.URL, newRecord(t), gate.WithNotifier(notifier))
		require.NoError(t, err)

		resp, err := (&http.Client{Transport: g}).Get(server.URL + "/api/orders")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Empty(t, notifier.errors())
	})
}

func TestGate_New(t *testing.T) {
	t.Parallel()

	t.Run("rejects a nil record", func(t *testing.T) {
		t.Parallel()
		_, err := gate.New("https://api.example.com", nil)
		assert.ErrorIs(t, err, gate.ErrNilRecord)
	})

	t.Run("rejects an unparseable base URL", func(t *testing.T) {
		t.Parallel()
		_, err := gate.New("not-a-url", newRecord(t))
		assert.ErrorIs(t, err, gate.ErrInvalidBaseURL)
	})

	t.Run("rejects a non-positive ceiling", func(t *testing.T) {
		t.Parallel()
		_, err := gate.New("https://api.example.com", newRecord(t), gate.WithMaxConcurrent(0))
		assert.ErrorIs(t, err, gate.ErrInvalidConcurrency)
	})

	t.Run("uses a no-op notifier by default", func(t *testing.T) {
		t.Parallel()
		g, err := gate.New("https://api.example.com", newRecord(t), gate.WithNotifier(notify.Nop{}))
		require.NoError(t, err)
		assert.NotNil(t, g)
	})
}
