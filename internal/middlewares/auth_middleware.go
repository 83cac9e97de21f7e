package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/access"
	"github.com/justsurfingit/Placement-Tracker/internal/auth"
)

// Context keys set by this package.
const (
	KeyUserID = "user_id"
	KeyEmail  = "email"
	KeyRole   = "role"
	KeyState  = "access_state"
)

const (
	SignInPath = "/signin"
	RootPath   = "/"
)

func extractBearer(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate reads the Bearer session. Without a valid one the visitor is
// sent to the sign-in page.
func Authenticate(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := access.State{Phase: access.Unauthenticated}
		if tok := extractBearer(c); tok != "" {
			if claims, err := sessions.Parse(tok); err == nil {
				c.Set(KeyUserID, claims.Sub)
				c.Set(KeyEmail, claims.Email)
				state = state.SignedIn()
			}
		}
		c.Set(KeyState, state)
		if state.Phase == access.Unauthenticated {
			redirect(c, access.RedirectSignIn)
			return
		}
		c.Next()
	}
}

// ResolveRole runs the capability checks for this request. Nothing is carried
// over from earlier requests, so a grant or revoke applies on the next call.
func ResolveRole(resolver *access.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(KeyUserID)
		role := resolver.Resolve(c.Request.Context(), userID)
		c.Set(KeyRole, role)
		c.Set(KeyState, CurrentState(c).WithRole(role))
		c.Next()
	}
}

// Gate applies access.Decide to the route.
func Gate(route access.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch out := access.Decide(CurrentState(c), route); out {
		case access.Render:
			c.Next()
		case access.Loading:
			// Resolution happens synchronously in ResolveRole, so reaching
			// here means the chain is misconfigured.
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "ROLE_UNRESOLVED"})
		default:
			redirect(c, out)
		}
	}
}

// AdminOnly is Gate for an admin route.
func AdminOnly(path string) gin.HandlerFunc {
	return Gate(access.Route{Path: path, AdminOnly: true})
}

// RequireAnyRole lets the request through when the resolved role is listed.
func RequireAnyRole(roles ...access.Role) gin.HandlerFunc {
	need := make(map[access.Role]struct{}, len(roles))
	for _, r := range roles {
		need[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := need[CurrentRole(c)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "FORBIDDEN"})
			return
		}
		c.Next()
	}
}

// redirect answers browsers with a real redirect and API clients with a
// status plus the target path. The admin redirect carries no message.
func redirect(c *gin.Context, out access.Outcome) {
	target, status := SignInPath, http.StatusUnauthorized
	if out == access.RedirectRoot {
		target, status = RootPath, http.StatusForbidden
	}
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, target)
		c.Abort()
		return
	}
	c.Header("Location", target)
	c.AbortWithStatusJSON(status, gin.H{"redirect": target})
}

func CurrentState(c *gin.Context) access.State {
	if v, ok := c.Get(KeyState); ok {
		if s, ok := v.(access.State); ok {
			return s
		}
	}
	return access.State{Phase: access.Unauthenticated}
}

func CurrentRole(c *gin.Context) access.Role {
	if v, ok := c.Get(KeyRole); ok {
		if r, ok := v.(access.Role); ok {
			return r
		}
	}
	return ""
}
