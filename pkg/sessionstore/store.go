package sessionstore

import "context"

// Storage keys shared with the other platform clients. The schema is fixed;
// no versioning or migration is performed here.
const (
	KeyAccessToken  = "at"
	KeyRefreshToken = "rt"
	KeyExpiresAt    = "expires_in"
	KeyUser         = "user"
	KeyCompanyID    = "cid"
	KeyOfficeID     = "oid"
)

// Store defines the persisted key-value storage behind a session Record.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
