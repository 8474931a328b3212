package gate

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/planetadeleste/avkit/pkg/notify"
	"github.com/planetadeleste/avkit/pkg/sessionstore"
)

// Injected header names.
const (
	HeaderAuthorization = "Authorization"
	HeaderRefreshToken  = "X-REFRESH-TOKEN"
	HeaderCompanyID     = "X-AV-CID"
	HeaderOfficeID      = "X-AV-OID"
	HeaderCSRFToken     = "X-CSRF-TOKEN"
	HeaderEnvironment   = "X-ENV"
	HeaderRequestID     = "X-Request-ID"
)

// maxErrorBody caps how much of a failed response is buffered for
// classification.
const maxErrorBody = 64 * 1024

// authLifecyclePaths are exempt from the forced-logout reaction: their
// failures belong to the session manager's own flow.
var authLifecyclePaths = []string{"/login", "/refresh", "/invalidate"}

// Gate is an http.RoundTripper decorator implementing admission control,
// header injection and error classification for API traffic.
type Gate struct {
	base         *url.URL
	record       *sessionstore.Record
	next         http.RoundTripper
	config       Config
	sem          *semaphore.Weighted
	inFlight     atomic.Int64
	notifier     notify.Notifier
	log          *slog.Logger
	onAuthReject func()
}

// New creates a Gate for the given API base URL and session record.
func New(apiBase string, record *sessionstore.Record, opts ...Option) (*Gate, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	base, err := url.Parse(apiBase)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	g := &Gate{
		base:     base,
		record:   record,
		next:     http.DefaultTransport,
		config:   DefaultConfig(),
		notifier: notify.Nop{},
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.config.MaxConcurrent <= 0 {
		return nil, ErrInvalidConcurrency
	}
	g.sem = semaphore.NewWeighted(g.config.MaxConcurrent)

	return g, nil
}

// InFlight reports how many requests are currently past admission.
func (g *Gate) InFlight() int64 {
	return g.inFlight.Load()
}

// RoundTrip admits the request under the concurrency ceiling, injects
// headers and classifies the outcome. Waiting ends early when the request
// context is cancelled.
func (g *Gate) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := g.sem.Acquire(req.Context(), 1); err != nil {
		return nil, err
	}
	g.inFlight.Add(1)

	defer func() {
		// Floored decrement guards against double release on racy paths.
		if n := g.inFlight.Add(-1); n < 0 {
			g.inFlight.CompareAndSwap(n, 0)
		}
		g.sem.Release(1)
	}()

	resp, err := g.next.RoundTrip(g.prepare(req))
	if err != nil {
		g.log.Error("request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Any("error", err))
		return nil, err
	}

	g.classify(resp)
	return resp, nil
}

// prepare clones the request, corrects a duplicated base prefix and injects
// headers when the target matches the API origin. The session record is read
// fresh here, at send time.
func (g *Gate) prepare(req *http.Request) *http.Request {
	out := req.Clone(req.Context())

	if basePath := strings.TrimSuffix(g.base.Path, "/"); basePath != "" {
		if doubled := basePath + basePath; strings.HasPrefix(out.URL.Path, doubled) {
			out.URL.Path = strings.TrimPrefix(out.URL.Path, basePath)
		}
	}

	if out.URL.Scheme != g.base.Scheme || out.URL.Host != g.base.Host {
		return out
	}

	ctx := req.Context()

	if at := g.record.AccessToken(ctx); at != "" {
		out.Header.Set(HeaderAuthorization, "Bearer "+at)
	}

	if strings.Contains(out.URL.Path, "/auth/logout") {
		if rt := g.record.RefreshToken(ctx); rt != "" {
			out.Header.Set(HeaderRefreshToken, rt)
		}
	}

	if cid := g.record.CompanyID(ctx); cid != "" {
		out.Header.Set(HeaderCompanyID, cid)
	}
	if oid := g.record.OfficeID(ctx); oid != "" {
		out.Header.Set(HeaderOfficeID, oid)
	}

	out.Header.Set(HeaderCSRFToken, g.record.CSRF())
	out.Header.Set(HeaderEnvironment, g.config.EnvironmentTag)
	out.Header.Set(HeaderRequestID, uuid.NewString())

	return out
}

// classify inspects failed responses: surfaces the envelope error through
// the notifier exactly once and fires the forced-logout hook on 400/401
// outside the auth lifecycle. The body is restored for downstream decoding.
func (g *Gate) classify(resp *http.Response) {
	if resp.StatusCode < http.StatusBadRequest {
		return
	}

	g.log.Error("request rejected",
		slog.Int("status", resp.StatusCode),
		slog.String("url", resp.Request.URL.String()))

	if !isAuthLifecycle(resp.Request.URL.Path) &&
		(resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized) {
		if g.onAuthReject != nil {
			g.onAuthReject()
		}
	}

	if msg := g.restoreBody(resp); msg != "" {
		g.notifier.Error(msg)
	}
}

// restoreBody buffers the error body, re-attaches it to the response and
// returns the envelope's error or message field when present.
func (g *Gate) restoreBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}

func isAuthLifecycle(path string) bool {
	for _, marker := range authLifecyclePaths {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}
