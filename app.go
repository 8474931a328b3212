package avkit

import (
	"log/slog"
	"net/http"

	"github.com/planetadeleste/avkit/pkg/apiclient"
	"github.com/planetadeleste/avkit/pkg/authsession"
	"github.com/planetadeleste/avkit/pkg/config"
	"github.com/planetadeleste/avkit/pkg/gate"
	"github.com/planetadeleste/avkit/pkg/localizer"
	"github.com/planetadeleste/avkit/pkg/logger"
	"github.com/planetadeleste/avkit/pkg/notify"
	"github.com/planetadeleste/avkit/pkg/routes"
	"github.com/planetadeleste/avkit/pkg/sessionstore"
)

// hubBufferSize is the per-subscriber backlog for flash messages.
const hubBufferSize = 16

// Config aggregates the environment-driven settings of all components.
type Config struct {
	API     apiclient.Config
	Gate    gate.Config
	Session authsession.Config
	Log     logger.Config
}

// LoadConfig reads Config from the environment, seeded from a .env file
// when one is present. API_ENDPOINT is required.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// App is the assembled toolkit. Session drives the lifecycle, Client issues
// gated API requests, Hub carries flash messages to subscribers.
type App struct {
	Store    sessionstore.Store
	Record   *sessionstore.Record
	Client   *apiclient.Client
	Session  *authsession.Manager
	Routes   *routes.Registry
	Hub      *notify.Hub
	Localize *localizer.Localizer
	Log      *slog.Logger
}

// Option adjusts App assembly.
type Option func(*assembly)

type assembly struct {
	store     sessionstore.Store
	log       *slog.Logger
	localize  *localizer.Localizer
	registry  *routes.Registry
	layout    authsession.LayoutSwitcher
	transport http.RoundTripper
}

// WithStore swaps the session storage backend. Defaults to the in-memory
// store; pass a RedisStore for persistence across restarts.
func WithStore(store sessionstore.Store) Option {
	return func(a *assembly) {
		if store != nil {
			a.store = store
		}
	}
}

// WithLogger sets the logger shared by all components.
func WithLogger(log *slog.Logger) Option {
	return func(a *assembly) {
		if log != nil {
			a.log = log
		}
	}
}

// WithLocalizer sets the translator used for flash messages and locale
// syncing.
func WithLocalizer(loc *localizer.Localizer) Option {
	return func(a *assembly) { a.localize = loc }
}

// WithRoutes sets the route registry backing navigation and permission
// checks.
func WithRoutes(registry *routes.Registry) Option {
	return func(a *assembly) { a.registry = registry }
}

// WithLayout sets the layout switcher the session manager drives.
func WithLayout(layout authsession.LayoutSwitcher) Option {
	return func(a *assembly) { a.layout = layout }
}

// WithTransport sets the transport underneath the gate. Defaults to
// http.DefaultTransport.
func WithTransport(next http.RoundTripper) Option {
	return func(a *assembly) { a.transport = next }
}

// New assembles the toolkit: store → record → gate → API client → session
// manager. The gate's authorization-rejection hook feeds back into the
// session manager's forced logout.
func New(cfg Config, opts ...Option) (*App, error) {
	a := &assembly{
		store: sessionstore.NewMemoryStore(),
		log:   logger.New(logger.WithConfig(cfg.Log)),
	}
	for _, opt := range opts {
		opt(a)
	}

	record := sessionstore.NewRecord(a.store)
	hub := notify.NewHub(hubBufferSize)

	app := &App{
		Store:    a.store,
		Record:   record,
		Routes:   a.registry,
		Hub:      hub,
		Localize: a.localize,
		Log:      a.log,
	}

	gateOpts := []gate.Option{
		gate.WithConfig(cfg.Gate),
		gate.WithNotifier(hub),
		gate.WithLogger(a.log),
		// Late binding: the manager does not exist yet, but the gate only
		// fires this after assembly completes.
		gate.WithOnAuthReject(func() {
			if app.Session != nil {
				app.Session.ForceLogout()
			}
		}),
	}
	if a.transport != nil {
		gateOpts = append(gateOpts, gate.WithTransport(a.transport))
	}

	g, err := gate.New(cfg.API.BaseURL, record, gateOpts...)
	if err != nil {
		return nil, err
	}

	client, err := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTransport(g),
		apiclient.WithTimeout(cfg.API.RequestTimeout),
		apiclient.WithLogger(a.log),
	)
	if err != nil {
		return nil, err
	}
	app.Client = client

	sessionOpts := []authsession.Option{
		authsession.WithConfig(cfg.Session),
		authsession.WithNotifier(hub),
		authsession.WithLogger(a.log),
	}
	if a.localize != nil {
		sessionOpts = append(sessionOpts, authsession.WithLocalizer(a.localize))
	}
	if a.registry != nil {
		sessionOpts = append(sessionOpts,
			authsession.WithResolver(a.registry),
			authsession.WithNavigator(a.registry),
		)
	}
	if a.layout != nil {
		sessionOpts = append(sessionOpts, authsession.WithLayout(a.layout))
	}
	app.Session = authsession.New(client, record, sessionOpts...)

	return app, nil
}

// Close releases the App's resources. Currently that is the flash hub.
func (app *App) Close() {
	app.Hub.Close()
}
