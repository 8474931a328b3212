// Package sessionstore persists the client-side session record of the Alvis
// platform: access/refresh tokens, token expiry, the last known user profile
// snapshot and the active company/office identifiers.
//
// The package is storage-agnostic: any backend that satisfies the Store
// interface can be plugged in. A concurrent in-memory implementation ships out
// of the box, alongside a Redis-backed one for processes that need the record
// to survive restarts.
//
// A Record is the typed facade the rest of the toolkit works with. It owns the
// transient authentication status (logging-in / logged-in) and the in-memory
// CSRF token, and reads the persisted fields fresh from the Store on every
// access so concurrent mutations (a logout between request admission and
// completion, for example) are always observed.
//
// # Usage
//
//	store := sessionstore.NewMemoryStore()
//	record := sessionstore.NewRecord(store)
//
//	tok := &oauth2.Token{AccessToken: "tok1", RefreshToken: "tok1", Expiry: expiry}
//	_ = record.SaveToken(ctx, tok)
//
// Redis backend:
//
//	client, _ := redis.ParseURL("redis://localhost:6379/0")
//	record := sessionstore.NewRecord(sessionstore.NewRedisStore(redis.NewClient(client), "avkit"))
package sessionstore
