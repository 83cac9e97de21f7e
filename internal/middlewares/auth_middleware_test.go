package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/access"
	"github.com/justsurfingit/Placement-Tracker/internal/auth"
)

type stubChecker struct {
	admin, student atomic.Bool
}

func (s *stubChecker) IsAdmin(context.Context, uint) (bool, error)   { return s.admin.Load(), nil }
func (s *stubChecker) IsStudent(context.Context, uint) (bool, error) { return s.student.Load(), nil }

func newRouter(sessions *auth.Sessions, checker access.Checker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	api := r.Group("/", Authenticate(sessions), ResolveRole(access.NewResolver(checker)))
	api.GET("/students", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": CurrentRole(c)})
	})
	api.GET("/users", AdminOnly("/users"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func do(r http.Handler, path, token, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUnauthenticatedGoesToSignIn(t *testing.T) {
	r := newRouter(auth.NewSessions("secret", time.Hour), &stubChecker{})

	w := do(r, "/students", "", "")
	if w.Code != http.StatusUnauthorized || w.Header().Get("Location") != SignInPath {
		t.Fatalf("api: code=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	w = do(r, "/users", "not-a-token", "text/html")
	if w.Code != http.StatusFound || w.Header().Get("Location") != SignInPath {
		t.Fatalf("browser: code=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestAdminRouteRedirectsNonAdminToRoot(t *testing.T) {
	sessions := auth.NewSessions("secret", time.Hour)
	checker := &stubChecker{}
	r := newRouter(sessions, checker)
	tok, err := sessions.Issue(7, "staff@example.com")
	if err != nil {
		t.Fatal(err)
	}

	w := do(r, "/users", tok, "text/html")
	if w.Code != http.StatusFound || w.Header().Get("Location") != RootPath {
		t.Fatalf("code=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	// Grant admin: the very next request sees it.
	checker.admin.Store(true)
	if w := do(r, "/users", tok, ""); w.Code != http.StatusOK {
		t.Fatalf("after grant code=%d", w.Code)
	}

	// Revoke: the next request is redirected again.
	checker.admin.Store(false)
	if w := do(r, "/users", tok, ""); w.Code != http.StatusForbidden || w.Header().Get("Location") != RootPath {
		t.Fatalf("after revoke code=%d", w.Code)
	}
}

func TestRoleIsResolvedPerRequest(t *testing.T) {
	sessions := auth.NewSessions("secret", time.Hour)
	checker := &stubChecker{}
	checker.student.Store(true)
	r := newRouter(sessions, checker)
	tok, _ := sessions.Issue(3, "s@example.com")

	if w := do(r, "/students", tok, ""); w.Body.String() != `{"role":"student"}` {
		t.Fatalf("body=%s", w.Body.String())
	}
	checker.admin.Store(true)
	if w := do(r, "/students", tok, ""); w.Body.String() != `{"role":"admin"}` {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestRequestIDIsSet(t *testing.T) {
	r := newRouter(auth.NewSessions("secret", time.Hour), &stubChecker{})
	w := do(r, "/students", "", "")
	if w.Header().Get(HeaderRequestID) == "" {
		t.Fatal("missing request id")
	}
}
