package gate

import (
	"log/slog"
	"net/http"

	"github.com/planetadeleste/avkit/pkg/notify"
)

// Option is a functional option for configuring the Gate.
type Option func(*Gate)

// WithTransport sets the underlying transport requests are forwarded to.
// Defaults to http.DefaultTransport.
func WithTransport(next http.RoundTripper) Option {
	return func(g *Gate) {
		if next != nil {
			g.next = next
		}
	}
}

// WithConfig sets custom configuration.
func WithConfig(cfg Config) Option {
	return func(g *Gate) {
		g.config = cfg
	}
}

// WithMaxConcurrent overrides the in-flight request ceiling.
func WithMaxConcurrent(n int64) Option {
	return func(g *Gate) {
		g.config.MaxConcurrent = n
	}
}

// WithEnvironmentTag overrides the X-ENV marker value.
func WithEnvironmentTag(tag string) Option {
	return func(g *Gate) {
		g.config.EnvironmentTag = tag
	}
}

// WithNotifier sets the notification channel failed requests surface their
// messages on. Defaults to a no-op notifier.
func WithNotifier(notifier notify.Notifier) Option {
	return func(g *Gate) {
		if notifier != nil {
			g.notifier = notifier
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// WithOnAuthReject sets the hook invoked when a non-auth endpoint answers
// with 400 or 401. Typically wired to the session manager's forced logout.
func WithOnAuthReject(fn func()) Option {
	return func(g *Gate) {
		g.onAuthReject = fn
	}
}
