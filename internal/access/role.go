package access

// Role is derived per request from two capability checks; it is never stored
// on the session.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// ResolveRole applies the precedence admin > student > staff.
func ResolveRole(isAdmin, isStudent bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	if isStudent {
		return RoleStudent
	}
	return RoleStaff
}

// Phase is where a visitor is in the sign-in / role resolution flow.
type Phase int

const (
	Unauthenticated Phase = iota
	Unresolved
	Resolved
)

// State is the gate's view of one visitor.
type State struct {
	Phase Phase
	Role  Role
}

// SignedIn moves an anonymous visitor to the unresolved phase.
func (s State) SignedIn() State {
	if s.Phase != Unauthenticated {
		return s
	}
	return State{Phase: Unresolved}
}

// WithRole finishes resolution.
func (s State) WithRole(r Role) State {
	if s.Phase == Unauthenticated {
		return s
	}
	return State{Phase: Resolved, Role: r}
}

// Outcome tells the route layer what to do.
type Outcome int

const (
	Render Outcome = iota
	Loading
	RedirectSignIn
	RedirectRoot
)

// Route describes a protected route.
type Route struct {
	Path      string
	AdminOnly bool
}

// Decide maps the visitor state to what a protected route does.
func Decide(s State, r Route) Outcome {
	switch s.Phase {
	case Unauthenticated:
		return RedirectSignIn
	case Unresolved:
		return Loading
	}
	if r.AdminOnly && s.Role != RoleAdmin {
		return RedirectRoot
	}
	return Render
}
