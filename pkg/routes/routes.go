package routes

import (
	"errors"
	"slices"
	"sync"
)

// NotFoundRedirect is where denied or unknown navigation targets land.
const NotFoundRedirect = "error.404"

// baseRoles is the fixed set a permission table is built over. Admin is
// always granted access.
var baseRoles = []string{"admin", "company", "guest"}

// ErrRouteNotFound indicates navigation to an unregistered route.
var ErrRouteNotFound = errors.New("routes.route_not_found")

// Permission grants or denies a single role access to a route.
type Permission struct {
	Role     string
	Access   bool
	Redirect string
}

// Meta is the per-route metadata block.
type Meta struct {
	Permissions []Permission
}

// Route is a named navigation target with optional permission metadata.
type Route struct {
	Name string
	Meta Meta
}

// Resolver resolves a route name to its declaration.
type Resolver interface {
	Resolve(name string) (Route, bool)
}

// Navigator drives and reports navigation.
type Navigator interface {
	// Push navigates to the named route.
	Push(name string) error

	// Current returns the name of the active route, empty when none.
	Current() string
}

// RolePermissions builds the permission table for a route allowed to the
// given roles. Every base role gets an entry; admin always passes.
func RolePermissions(allowed ...string) []Permission {
	permissions := make([]Permission, 0, len(baseRoles))
	for _, role := range baseRoles {
		permissions = append(permissions, Permission{
			Role:     role,
			Access:   role == "admin" || slices.Contains(allowed, role),
			Redirect: NotFoundRedirect,
		})
	}
	return permissions
}

// Registry is an in-memory Resolver and Navigator.
type Registry struct {
	mu      sync.RWMutex
	routes  map[string]Route
	current string
}

// NewRegistry creates a registry positioned on the named route. The initial
// route does not have to be registered yet.
func NewRegistry(initial string) *Registry {
	return &Registry{
		routes:  make(map[string]Route),
		current: initial,
	}
}

// Register adds or replaces route declarations.
func (r *Registry) Register(routes ...Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, route := range routes {
		if route.Name == "" {
			continue
		}
		r.routes[route.Name] = route
	}
}

// Resolve returns the declaration for name.
func (r *Registry) Resolve(name string) (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, exists := r.routes[name]
	return route, exists
}

// Push navigates to the named route, or returns ErrRouteNotFound.
func (r *Registry) Push(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[name]; !exists {
		return ErrRouteNotFound
	}
	r.current = name
	return nil
}

// Current returns the active route name.
func (r *Registry) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
