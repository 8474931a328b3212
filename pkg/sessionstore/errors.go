package sessionstore

import "errors"

var (
	// ErrKeyNotFound indicates the requested key has no persisted value
	ErrKeyNotFound = errors.New("sessionstore.key_not_found")

	// ErrEmptyKey indicates an empty storage key was supplied
	ErrEmptyKey = errors.New("sessionstore.empty_key")

	// ErrNoToken indicates no access token is persisted
	ErrNoToken = errors.New("sessionstore.no_token")

	// ErrInvalidExpiry indicates the persisted expiry is not a valid timestamp
	ErrInvalidExpiry = errors.New("sessionstore.invalid_expiry")

	// ErrNoUser indicates no user profile snapshot is persisted
	ErrNoUser = errors.New("sessionstore.no_user")

	// ErrInvalidRedisURL indicates an unparseable Redis connection string
	ErrInvalidRedisURL = errors.New("sessionstore.invalid_redis_url")

	// ErrRedisUnavailable indicates the Redis backend could not be reached
	ErrRedisUnavailable = errors.New("sessionstore.redis_unavailable")
)
