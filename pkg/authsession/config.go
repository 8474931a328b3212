package authsession

import "time"

// Config holds session manager configuration.
type Config struct {
	// RefreshLeeway is how long before token expiry the proactive refresh
	// fires. A session already inside the leeway window at bootstrap is
	// treated as expired.
	RefreshLeeway time.Duration `env:"SESSION_REFRESH_LEEWAY" envDefault:"10m"`

	// HomeRoute is where a healthy session lands after bootstrap.
	HomeRoute string `env:"SESSION_HOME_ROUTE" envDefault:"home"`

	// LoginRoute is where logout navigates to.
	LoginRoute string `env:"SESSION_LOGIN_ROUTE" envDefault:"login"`
}

// DefaultConfig returns the default session manager configuration.
func DefaultConfig() Config {
	return Config{
		RefreshLeeway: 10 * time.Minute,
		HomeRoute:     "home",
		LoginRoute:    "login",
	}
}
