// Package routes models the routing collaborator the session manager talks
// to: a registry of named routes carrying role-permission metadata and a
// navigator tracking the current route.
//
// The routing table itself is owned by the embedding application; this
// package only defines the resolution and navigation surface plus an
// in-memory Registry good enough for most shells and for tests.
//
// # Usage
//
//	registry := routes.NewRegistry("login")
//	registry.Register(
//	    routes.Route{Name: "home", Meta: routes.Meta{Permissions: routes.RolePermissions("company")}},
//	    routes.Route{Name: "login"},
//	)
//
//	_ = registry.Push("home")
package routes
