// Package authsession drives the full authentication lifecycle of the
// platform client: login, registration, session commit, proactive token
// refresh, server-side probes, logout and route-permission checks.
//
// A Manager mutates a single sessionstore.Record and owns the one
// outstanding proactive-refresh timer. All network traffic goes through the
// apiclient, whose transport is the request gate, so the manager's own calls
// are subject to the same admission control and classification as everything
// else.
//
// # State machine
//
// The session status moves LoggedOut → LoggingIn → LoggedIn → LoggedOut.
// InitSession is the sole entry point at bootstrap: it tolerates a missing,
// expired or healthy session and either schedules the next refresh or forces
// a logout. The LoggedIn → LoggedOut transition happens on explicit logout,
// on refresh failure, or through the gate's forced-logout hook when any
// non-auth endpoint answers 400/401.
//
// # Usage
//
//	manager := authsession.New(client, record,
//	    authsession.WithNotifier(hub),
//	    authsession.WithNavigator(registry),
//	    authsession.WithResolver(registry),
//	    authsession.WithLayout(layoutFn),
//	)
//
//	if _, err := manager.LogIn(ctx, "user@example.com", "secret"); err != nil {
//	    // session untouched, a localized message was already flashed
//	}
//
//	manager.InitSession(ctx)
package authsession
