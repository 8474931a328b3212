// Package apiclient is the thin HTTP client for the platform's auth API. It
// speaks the platform's response envelope convention ({status, message,
// error, data}) and exposes one method per endpoint the session lifecycle
// consumes.
//
// The client carries no auth logic of its own: credentials, tenant and CSRF
// headers are injected by the request gate, which callers install as the
// client's transport.
//
// # Usage
//
//	client, err := apiclient.New("https://api.example.com/api/v1",
//	    apiclient.WithTransport(g),
//	)
//
//	envelope, err := client.Login(ctx, "user@example.com", "secret")
//
// Failed requests still return the decoded envelope when the server sent
// one, so callers can inspect the server-side message alongside the error.
package apiclient
