package domain

// RouteAccess is the static access requirement attached to a navigable
// destination. It is configuration, never mutated at runtime.
type RouteAccess struct {
	RequiresAuth  bool
	RequiresAdmin bool
}

// Route pairs a navigation path with its access requirement.
type Route struct {
	Path   string
	Access RouteAccess
}

// Common access requirements.
var (
	Public    = RouteAccess{}
	Protected = RouteAccess{RequiresAuth: true}
	AdminOnly = RouteAccess{RequiresAuth: true, RequiresAdmin: true}
)
