package authsession

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2"

	"github.com/planetadeleste/avkit/pkg/apiclient"
	"github.com/planetadeleste/avkit/pkg/localizer"
	"github.com/planetadeleste/avkit/pkg/notify"
	"github.com/planetadeleste/avkit/pkg/routes"
	"github.com/planetadeleste/avkit/pkg/sessionstore"
)

// Localized message keys.
const (
	msgInvalidCredentials = "invalid_credentials"
	msgRegistrationFailed = "registration_failed"
)

// Manager handles the session lifecycle.
type Manager struct {
	api      *apiclient.Client
	record   *sessionstore.Record
	config   Config
	notifier notify.Notifier
	localize *localizer.Localizer
	resolver routes.Resolver
	nav      routes.Navigator
	layout   LayoutSwitcher
	log      *slog.Logger
	now      func() time.Time

	refresh   scheduler
	loggingIn atomic.Bool
}

// New creates a session manager over the given API client and session
// record. Both are required; collaborators (notifier, router, layout,
// localizer) are optional.
func New(api *apiclient.Client, record *sessionstore.Record, opts ...Option) *Manager {
	if api == nil || record == nil {
		// Fail fast on misconfiguration; nothing works without these two.
		panic("authsession: api client and session record are required")
	}

	m := &Manager{
		api:      api,
		record:   record,
		config:   DefaultConfig(),
		notifier: notify.Nop{},
		log:      slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Record exposes the session record the manager mutates.
func (m *Manager) Record() *sessionstore.Record {
	return m.record
}

// IsLogged reports whether a session is established for a non-guest role.
func (m *Manager) IsLogged(ctx context.Context) bool {
	return m.record.Status().LoggedIn && m.record.Role(ctx) != ""
}

// LogIn clears any existing session, exchanges credentials and commits the
// result. On rejection a localized message is flashed and the session stays
// untouched. Overlapping attempts are refused with ErrLoginInProgress.
func (m *Manager) LogIn(ctx context.Context, login, secret string) (*apiclient.AuthData, error) {
	if !m.loggingIn.CompareAndSwap(false, true) {
		return nil, ErrLoginInProgress
	}
	defer m.loggingIn.Store(false)

	// Reset session state before issuing new credentials.
	if err := m.record.Clear(ctx); err != nil {
		m.log.Error("session reset failed", slog.Any("error", err))
	}
	m.record.SetLoggingIn(true)
	defer m.record.SetLoggingIn(false)

	envelope, err := m.api.Login(ctx, login, secret)
	if err != nil || envelope == nil || !envelope.Status {
		reason := envelope.Reason()
		if reason == "" || reason == msgInvalidCredentials {
			reason = m.translate(msgInvalidCredentials)
		}
		m.notifier.Error(reason)

		if err != nil {
			return nil, errors.Join(ErrInvalidCredentials, err)
		}
		return nil, ErrInvalidCredentials
	}

	var data apiclient.AuthData
	if err := envelope.Decode(&data); err != nil {
		return nil, err
	}

	return m.Authenticate(ctx, &data)
}

// Register submits a registration request and commits its result. Failures
// are both flashed and returned so callers can react further.
func (m *Manager) Register(ctx context.Context, fields map[string]any) (*apiclient.AuthData, error) {
	envelope, err := m.api.Register(ctx, fields)
	if err != nil || envelope == nil || envelope.Error != "" || !envelope.Status {
		reason := envelope.Reason()
		if reason == "" {
			reason = m.translate(msgRegistrationFailed)
		}
		m.notifier.Error(reason)

		regErr := fmt.Errorf("%w: %s", ErrRegistration, reason)
		if err != nil {
			regErr = errors.Join(regErr, err)
		}
		return nil, regErr
	}

	var data apiclient.AuthData
	if err := envelope.Decode(&data); err != nil {
		return nil, err
	}

	return m.Authenticate(ctx, &data)
}

// Authenticate is the session-commit step. A payload without both a token
// and an expiry is returned unchanged: a successful call, but not a
// login-bearing one. Otherwise the token bundle is persisted and, when a
// user snapshot is present, the session becomes logged in and the locale is
// synced with the user's stored preference.
func (m *Manager) Authenticate(ctx context.Context, data *apiclient.AuthData) (*apiclient.AuthData, error) {
	if data == nil {
		return nil, nil
	}

	expiresIn := data.ExpiresIn
	if expiresIn == "" && data.Token != "" {
		if exp, ok := tokenExpiry(data.Token); ok {
			expiresIn = exp.UTC().Format(sessionstore.ExpiryLayout)
		}
	}

	if data.Token == "" || expiresIn == "" {
		return data, nil
	}

	expiry, err := time.Parse(time.RFC3339, expiresIn)
	if err != nil {
		return data, errors.Join(ErrMalformedExpiry, err)
	}

	tok := &oauth2.Token{
		AccessToken: data.Token,
		// The platform issues a single token; the refresh slot duplicates it.
		RefreshToken: data.Token,
		Expiry:       expiry,
	}
	if err := m.record.SaveToken(ctx, tok); err != nil {
		return data, err
	}

	if len(data.User) > 0 {
		if err := m.record.SaveUser(ctx, data.User); err != nil {
			return data, err
		}
		m.record.MarkLoggedIn()

		if m.localize != nil {
			m.localize.SetLocale(localizer.UserLocale(data.User, m.localize.Locale()))
		}
	}

	return data, nil
}

// LogOut invalidates the session remotely on a best-effort basis and always
// clears local state, switches to the unauthenticated layout and navigates
// to the login route. It is idempotent and never fails.
func (m *Manager) LogOut(ctx context.Context) {
	if _, err := m.api.Logout(ctx); err != nil {
		// Best effort only; local cleanup runs regardless.
		m.log.Error("remote session invalidation failed", slog.Any("error", err))
	}

	m.clearLocal(ctx)
	m.setLayout(LayoutLogin)
	m.navigate(m.config.LoginRoute)
}

// ForceLogout clears local session state without remote invalidation or
// navigation. Wired as the gate's reaction to an authorization rejection.
func (m *Manager) ForceLogout() {
	m.clearLocal(context.Background())
}

func (m *Manager) clearLocal(ctx context.Context) {
	m.refresh.stop()
	if err := m.record.Clear(ctx); err != nil {
		m.log.Error("session cleanup failed", slog.Any("error", err))
	}
}

// InitSession is the bootstrap entry point. With a healthy session it
// schedules the proactive refresh, navigates home and switches to the
// authenticated layout; with a missing or imminent expiry it forces a
// logout; with no session it only switches to the unauthenticated layout.
func (m *Manager) InitSession(ctx context.Context) {
	if !m.IsLogged(ctx) {
		m.setLayout(LayoutLogin)
		return
	}

	expiry, err := m.record.ExpiresAt(ctx)
	if err != nil {
		m.LogOut(ctx)
		return
	}

	fireAt := expiry.Add(-m.config.RefreshLeeway)
	now := m.now()
	if !now.Before(fireAt) {
		m.LogOut(ctx)
		return
	}

	m.scheduleRefresh(fireAt.Sub(now))

	if m.nav != nil && m.nav.Current() != m.config.HomeRoute {
		m.navigate(m.config.HomeRoute)
	}
	m.setLayout(LayoutMain)
}

// RefreshAccessToken renews the access token. Any unsuccessful response
// triggers a full logout; a token-bearing one is committed and the next
// refresh is scheduled, keeping the timer chain alive for the session's
// lifetime.
func (m *Manager) RefreshAccessToken(ctx context.Context) (string, error) {
	envelope, err := m.api.Refresh(ctx)
	if err != nil || envelope == nil || !envelope.Status {
		m.LogOut(ctx)
		if err != nil {
			return "", errors.Join(ErrRefreshFailed, err)
		}
		return "", ErrRefreshFailed
	}

	var data apiclient.AuthData
	if err := envelope.Decode(&data); err != nil {
		return "", err
	}
	if data.Token == "" {
		return "", nil
	}

	if _, err := m.Authenticate(ctx, &data); err != nil {
		return "", err
	}

	if expiry, err := m.record.ExpiresAt(ctx); err == nil {
		m.scheduleRefresh(expiry.Add(-m.config.RefreshLeeway).Sub(m.now()))
	}

	return data.Token, nil
}

// AuthCheck probes the server for session validity. Any failure means "not
// confirmed"; this is a best-effort probe, not an authority.
func (m *Manager) AuthCheck(ctx context.Context) bool {
	envelope, err := m.api.Check(ctx)
	if err != nil || envelope == nil {
		return false
	}
	return envelope.Status
}

// FetchCSRF obtains a CSRF token and stores it on the record for the gate
// to inject.
func (m *Manager) FetchCSRF(ctx context.Context) error {
	envelope, err := m.api.CSRF(ctx)
	if err != nil {
		return err
	}

	var data apiclient.CSRFData
	if err := envelope.Decode(&data); err != nil {
		return err
	}

	m.record.SetCSRF(data.Token)
	return nil
}

// HasRouteAccess checks the current role against the named route's
// permission metadata. Empty name falls back to the current route. Routes
// without metadata deny access.
func (m *Manager) HasRouteAccess(ctx context.Context, name string) bool {
	if name == "" && m.nav != nil {
		name = m.nav.Current()
	}
	if name == "" || m.resolver == nil {
		return false
	}

	route, ok := m.resolver.Resolve(name)
	if !ok || len(route.Meta.Permissions) == 0 {
		return false
	}

	role := m.record.Role(ctx)
	for _, permission := range route.Meta.Permissions {
		if permission.Role == role {
			return permission.Access
		}
	}
	return false
}

func (m *Manager) scheduleRefresh(d time.Duration) {
	m.refresh.schedule(d, func() {
		if _, err := m.RefreshAccessToken(context.Background()); err != nil {
			m.log.Error("proactive token refresh failed", slog.Any("error", err))
		}
	})
}

func (m *Manager) translate(key string) string {
	if m.localize != nil {
		return m.localize.T(key)
	}
	return key
}

func (m *Manager) setLayout(name string) {
	if m.layout != nil {
		m.layout.SetLayout(name)
	}
}

func (m *Manager) navigate(name string) {
	if m.nav == nil {
		return
	}
	if err := m.nav.Push(name); err != nil {
		m.log.Error("navigation failed", slog.String("route", name), slog.Any("error", err))
	}
}
