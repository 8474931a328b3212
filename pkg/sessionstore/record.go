package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ExpiryLayout is the ISO-8601 millisecond format the platform persists
// under the expires_in key, always in UTC.
const ExpiryLayout = "2006-01-02T15:04:05.000Z07:00"

// Status holds the transient vs durable authentication state. LoggingIn is
// informational only; LoggedIn is the durable truth the rest of the toolkit
// reads.
type Status struct {
	LoggingIn bool
	LoggedIn  bool
}

// Record is the typed facade over a Store. Persisted fields are read fresh
// from the Store on every access; the authentication status and the CSRF
// token live in memory only.
type Record struct {
	store Store

	mu     sync.RWMutex
	status Status
	csrf   string
}

// NewRecord creates a Record over the given store. When a user profile is
// already persisted the record starts in the logged-in state, mirroring a
// page reload with a live session.
func NewRecord(store Store) *Record {
	r := &Record{store: store}
	if _, err := store.Get(context.Background(), KeyUser); err == nil {
		r.status.LoggedIn = true
	}
	return r
}

// Store exposes the underlying storage backend.
func (r *Record) Store() Store {
	return r.store
}

// Status returns a copy of the current authentication status.
func (r *Record) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// SetLoggingIn flips the transient logging-in flag.
func (r *Record) SetLoggingIn(v bool) {
	r.mu.Lock()
	r.status.LoggingIn = v
	r.mu.Unlock()
}

// MarkLoggedIn transitions the record into the durable logged-in state.
func (r *Record) MarkLoggedIn() {
	r.mu.Lock()
	r.status.LoggingIn = false
	r.status.LoggedIn = true
	r.mu.Unlock()
}

// CSRF returns the in-memory CSRF token, empty when none was fetched.
func (r *Record) CSRF() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.csrf
}

// SetCSRF stores the CSRF token in memory.
func (r *Record) SetCSRF(token string) {
	r.mu.Lock()
	r.csrf = token
	r.mu.Unlock()
}

// SaveToken persists the token bundle: access token, refresh token (falling
// back to the access token when absent) and the expiry in ISO millisecond
// format, UTC.
func (r *Record) SaveToken(ctx context.Context, tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return ErrNoToken
	}

	if err := r.store.Set(ctx, KeyAccessToken, tok.AccessToken); err != nil {
		return err
	}

	refresh := tok.RefreshToken
	if refresh == "" {
		refresh = tok.AccessToken
	}
	if err := r.store.Set(ctx, KeyRefreshToken, refresh); err != nil {
		return err
	}

	if !tok.Expiry.IsZero() {
		if err := r.store.Set(ctx, KeyExpiresAt, tok.Expiry.UTC().Format(ExpiryLayout)); err != nil {
			return err
		}
	}

	return nil
}

// Token reads the persisted token bundle. Returns ErrNoToken when no access
// token is stored. A missing or malformed expiry yields a token with zero
// Expiry rather than an error so callers can still use the credential.
func (r *Record) Token(ctx context.Context) (*oauth2.Token, error) {
	access, err := r.store.Get(ctx, KeyAccessToken)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrNoToken
		}
		return nil, err
	}

	tok := &oauth2.Token{AccessToken: access, TokenType: "Bearer"}

	if refresh, err := r.store.Get(ctx, KeyRefreshToken); err == nil {
		tok.RefreshToken = refresh
	}
	if expiry, err := r.ExpiresAt(ctx); err == nil {
		tok.Expiry = expiry
	}

	return tok, nil
}

// AccessToken returns the persisted access token, empty when absent.
func (r *Record) AccessToken(ctx context.Context) string {
	value, err := r.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return ""
	}
	return value
}

// RefreshToken returns the persisted refresh token, empty when absent.
func (r *Record) RefreshToken(ctx context.Context) string {
	value, err := r.store.Get(ctx, KeyRefreshToken)
	if err != nil {
		return ""
	}
	return value
}

// ExpiresAt parses the persisted expiry timestamp.
func (r *Record) ExpiresAt(ctx context.Context) (time.Time, error) {
	value, err := r.store.Get(ctx, KeyExpiresAt)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidExpiry, err)
	}
	return t, nil
}

// SaveUser persists the raw user profile snapshot.
func (r *Record) SaveUser(ctx context.Context, profile json.RawMessage) error {
	if len(profile) == 0 {
		return ErrNoUser
	}
	return r.store.Set(ctx, KeyUser, string(profile))
}

// User returns the persisted user profile snapshot, or ErrNoUser.
func (r *Record) User(ctx context.Context) (json.RawMessage, error) {
	value, err := r.store.Get(ctx, KeyUser)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrNoUser
		}
		return nil, err
	}
	return json.RawMessage(value), nil
}

// Role resolves the current role from the stored profile. Empty when logged
// out, when the profile carries no role data, or when only the guest role is
// present.
func (r *Record) Role(ctx context.Context) string {
	profile, err := r.User(ctx)
	if err != nil {
		return ""
	}

	role, ok := ResolveRole(ParseRoleSource(profile))
	if !ok {
		return ""
	}
	return role
}

// CompanyID returns the active company identifier, empty when none is set.
func (r *Record) CompanyID(ctx context.Context) string {
	value, err := r.store.Get(ctx, KeyCompanyID)
	if err != nil {
		return ""
	}
	return value
}

// OfficeID returns the active office identifier, empty when none is set.
func (r *Record) OfficeID(ctx context.Context) string {
	value, err := r.store.Get(ctx, KeyOfficeID)
	if err != nil {
		return ""
	}
	return value
}

// Clear removes all four session fields and resets the status. The company
// and office identifiers survive so a re-login lands in the same tenant
// context. Clear is idempotent.
func (r *Record) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyExpiresAt, KeyUser} {
		if err := r.store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}

	r.mu.Lock()
	r.status = Status{}
	r.csrf = ""
	r.mu.Unlock()

	return errors.Join(errs...)
}
