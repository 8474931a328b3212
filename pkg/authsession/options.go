package authsession

import (
	"log/slog"
	"time"

	"github.com/planetadeleste/avkit/pkg/localizer"
	"github.com/planetadeleste/avkit/pkg/notify"
	"github.com/planetadeleste/avkit/pkg/routes"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithConfig sets custom configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithRefreshLeeway overrides how long before expiry the proactive refresh
// fires.
func WithRefreshLeeway(leeway time.Duration) Option {
	return func(m *Manager) {
		if leeway > 0 {
			m.config.RefreshLeeway = leeway
		}
	}
}

// WithNotifier sets the user-facing notification channel.
func WithNotifier(notifier notify.Notifier) Option {
	return func(m *Manager) {
		if notifier != nil {
			m.notifier = notifier
		}
	}
}

// WithLocalizer sets the localizer used for user-facing messages and for
// syncing the locale with the authenticated user's preference.
func WithLocalizer(loc *localizer.Localizer) Option {
	return func(m *Manager) {
		m.localize = loc
	}
}

// WithResolver sets the route resolver used for permission checks.
func WithResolver(resolver routes.Resolver) Option {
	return func(m *Manager) {
		m.resolver = resolver
	}
}

// WithNavigator sets the navigator driving route changes.
func WithNavigator(nav routes.Navigator) Option {
	return func(m *Manager) {
		m.nav = nav
	}
}

// WithLayout sets the layout switcher.
func WithLayout(layout LayoutSwitcher) Option {
	return func(m *Manager) {
		m.layout = layout
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
