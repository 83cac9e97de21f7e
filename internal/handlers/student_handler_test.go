package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/access"
	"github.com/justsurfingit/Placement-Tracker/internal/middlewares"
	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
)

// ownerLookup links login 7 to student 1.
type ownerLookup struct{ err error }

func (o ownerLookup) ForUser(_ context.Context, userID uint) (*models.Student, error) {
	if o.err != nil {
		return nil, o.err
	}
	if userID != 7 {
		return nil, services.ErrNotFound
	}
	return &models.Student{ID: 1}, nil
}

func signedInAs(role access.Role, userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middlewares.KeyUserID, userID)
		c.Set(middlewares.KeyRole, role)
		c.Next()
	}
}

func TestStudentCannotReachOtherRecords(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("", signedInAs(access.RoleStudent, 7))
	// Nothing behind the guard may run for these requests.
	RegisterRecordRoutes(g, ownerLookup{}, NewStudentHandler(nil), NewTestHandler(nil), NewCVHandler(nil), NewDocumentHandler(nil))

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/students/2"},
		{http.MethodPut, "/students/2"},
		{http.MethodGet, "/students/2/form"},
		{http.MethodGet, "/students/2/events"},
		{http.MethodGet, "/students/2/tests"},
		{http.MethodGet, "/students/2/cv"},
		{http.MethodGet, "/students/2/cv?format=xlsx"},
		{http.MethodGet, "/students/2/documents"},
		{http.MethodPost, "/students/2/documents"},
		{http.MethodGet, "/students/2/documents/passport.pdf"},
		{http.MethodGet, "/students/2/documents/passport.pdf/url"},
		{http.MethodDelete, "/students/2/documents/passport.pdf"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(req.method, req.path, nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s: code %d, want 404", req.method, req.path, w.Code)
		}
	}
}

func TestOwnRecordOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		role   access.Role
		userID uint
		lookup ownerLookup
		path   string
		want   int
	}{
		{"student own record", access.RoleStudent, 7, ownerLookup{}, "/students/1/cv", http.StatusOK},
		{"student other record", access.RoleStudent, 7, ownerLookup{}, "/students/3/cv", http.StatusNotFound},
		{"student without a record", access.RoleStudent, 8, ownerLookup{}, "/students/1/cv", http.StatusNotFound},
		{"lookup failure", access.RoleStudent, 7, ownerLookup{err: errors.New("db down")}, "/students/1/cv", http.StatusNotFound},
		{"bad id", access.RoleStudent, 7, ownerLookup{}, "/students/abc/cv", http.StatusBadRequest},
		{"staff", access.RoleStaff, 99, ownerLookup{}, "/students/3/cv", http.StatusOK},
		{"admin", access.RoleAdmin, 99, ownerLookup{}, "/students/3/cv", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/students/:id/cv", signedInAs(tc.role, tc.userID), OwnRecordOnly(tc.lookup), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.want {
				t.Fatalf("code %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestPageParamsClamp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query      string
		page, size int
	}{
		{"", 1, 20},
		{"?page=3&size=50", 3, 50},
		{"?page=0&size=500", 1, 100},
		{"?size=0", 1, 1},
		{"?page=-2&size=-5", 1, 1},
		{"?size=lots", 1, 20},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/students"+tc.query, nil)
		page, size := pageParams(c)
		if page != tc.page || size != tc.size {
			t.Errorf("%q: page=%d size=%d, want %d/%d", tc.query, page, size, tc.page, tc.size)
		}
	}
}
