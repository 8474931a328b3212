// Package avkit is a client toolkit for the Alvis platform API. It manages
// the authenticated session lifecycle (login, proactive token refresh,
// logout) and routes every API request through a gate that enforces a
// concurrency ceiling, injects identity headers and reacts to authorization
// rejections.
//
// The subpackages are usable on their own; this package wires them into a
// ready App:
//
//	cfg, err := avkit.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app, err := avkit.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := app.Session.LogIn(ctx, login, password); err != nil {
//	    // rejected; a flash message was already published on app.Hub
//	}
//	app.Session.InitSession(ctx)
//
// All API traffic sent through app.Client carries the session headers and
// counts against the gate's admission ceiling.
package avkit
