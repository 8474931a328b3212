// Package gate wraps every outbound API request in admission control, header
// injection and uniform error classification. It sits in front of the HTTP
// transport as an http.RoundTripper decorator, so the session manager's own
// calls flow through the same pipeline as everything else.
//
// # Admission control
//
// A counting semaphore with a FIFO wait queue caps the number of in-flight
// requests (default 5). Waiters are released in arrival order; a request
// whose context is cancelled while waiting gives up with the context error.
//
// # Header injection
//
// Requests targeting the configured API origin get their headers injected at
// send time, reading the session record fresh: the bearer access token, the
// refresh token (logout endpoint only), tenant company/office identifiers,
// the CSRF token, the environment marker and a request id.
//
// # Error classification
//
// Responses with a 4xx/5xx status have their envelope error surfaced once
// through the notification channel. A 400 or 401 from any endpoint outside
// the auth lifecycle (login, refresh, invalidate) additionally triggers the
// forced-logout hook. The gate never retries.
//
// # Usage
//
//	g, err := gate.New("https://api.example.com/api/v1", record,
//	    gate.WithNotifier(hub),
//	    gate.WithOnAuthReject(manager.ForceLogout),
//	)
//	client := &http.Client{Transport: g}
package gate
