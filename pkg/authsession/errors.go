package authsession

import "errors"

var (
	// ErrInvalidCredentials indicates the server rejected the login
	ErrInvalidCredentials = errors.New("authsession.invalid_credentials")

	// ErrLoginInProgress indicates an overlapping login attempt
	ErrLoginInProgress = errors.New("authsession.login_in_progress")

	// ErrRegistration indicates the registration request was rejected
	ErrRegistration = errors.New("authsession.registration_failed")

	// ErrRefreshFailed indicates the token refresh was rejected
	ErrRefreshFailed = errors.New("authsession.refresh_failed")

	// ErrMalformedExpiry indicates an unparseable expiry on an auth payload
	ErrMalformedExpiry = errors.New("authsession.malformed_expiry")
)
