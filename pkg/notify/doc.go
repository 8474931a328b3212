// Package notify is the toolkit's notification channel: the single place
// user-facing flash messages are pushed through.
//
// The core only ever calls Error, but Success and Info ship alongside so UI
// consumers can reuse the same channel. A Hub fans messages out to any number
// of subscribers without blocking the caller; messages for slow consumers are
// dropped rather than stalling the request path.
//
// # Usage
//
//	hub := notify.NewHub(16)
//	defer hub.Close()
//
//	sub := hub.Subscribe(ctx)
//	go func() {
//	    for msg := range sub {
//	        render(msg)
//	    }
//	}()
//
//	hub.Error("invalid_credentials")
//
// A slog-backed notifier and a no-op notifier are available for headless and
// test setups.
package notify
