package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/access"
	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/middlewares"
	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
)

type StudentHandler struct {
	Students *services.StudentService
}

func NewStudentHandler(students *services.StudentService) *StudentHandler {
	return &StudentHandler{Students: students}
}

// StudentLookup finds the record linked to a student login.
type StudentLookup interface {
	ForUser(ctx context.Context, userID uint) (*models.Student, error)
}

// OwnRecordOnly guards the /students/:id routes. A student caller only
// reaches their own record; any other id looks missing to them.
func OwnRecordOnly(students StudentLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if middlewares.CurrentRole(c) != access.RoleStudent {
			c.Next()
			return
		}
		id, ok := uintParam(c, "id")
		if !ok {
			c.Abort()
			return
		}
		own, err := students.ForUser(c.Request.Context(), c.GetUint(middlewares.KeyUserID))
		if err != nil || own.ID != id {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND"})
			return
		}
		c.Next()
	}
}

// RegisterRecordRoutes mounts every per-student route any signed-in role may
// use behind OwnRecordOnly. docs may be nil when storage is disabled.
func RegisterRecordRoutes(g *gin.RouterGroup, owners StudentLookup, students *StudentHandler, tests *TestHandler, cv *CVHandler, docs *DocumentHandler) {
	rec := g.Group("/students/:id", OwnRecordOnly(owners))
	rec.GET("", students.Get)
	rec.GET("/form", students.Form)
	rec.PUT("", students.Update)
	rec.GET("/events", students.Events)
	rec.GET("/tests", tests.List)
	rec.GET("/cv", cv.Get)
	if docs != nil {
		rec.GET("/documents", docs.List)
		rec.POST("/documents", docs.Upload)
		rec.GET("/documents/:name", docs.Open)
		rec.GET("/documents/:name/url", docs.URL)
		rec.DELETE("/documents/:name", docs.Delete)
	}
}

// List is GET /students. Without filters it serves the shared directory; a
// student only ever sees their own record.
func (h *StudentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if middlewares.CurrentRole(c) == access.RoleStudent {
		own, err := h.Students.ForUser(ctx, c.GetUint(middlewares.KeyUserID))
		if err != nil {
			c.JSON(http.StatusOK, []models.Student{})
			return
		}
		c.JSON(http.StatusOK, []models.Student{*own})
		return
	}

	q := c.Query("q")
	if q == "" && c.Query("page") == "" {
		students, err := h.Students.Directory.List(ctx)
		if err != nil {
			fail(c, "list students", err)
			return
		}
		c.JSON(http.StatusOK, students)
		return
	}

	page, size := pageParams(c)
	items, total, err := h.Students.Search(ctx, q, page, size)
	if err != nil {
		fail(c, "search students", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "page": page, "size": size})
}

const maxPageSize = 100

// pageParams reads page (from 1) and size, clamped to 1..maxPageSize.
func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		size = 20
	}
	if page < 1 {
		page = 1
	}
	switch {
	case size < 1:
		size = 1
	case size > maxPageSize:
		size = maxPageSize
	}
	return page, size
}

func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	st, err := h.Students.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, "load student", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Form returns the record shaped as the edit form payload.
func (h *StudentHandler) Form(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	st, err := h.Students.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, "load student", err)
		return
	}
	c.JSON(http.StatusOK, dtos.StudentRequestFromModel(*st))
}

func (h *StudentHandler) Create(c *gin.Context) {
	var req dtos.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	req.Normalize()
	if errs := dtos.Validate(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "fields": errs})
		return
	}
	st := req.ToModel()
	if err := h.Students.Create(c.Request.Context(), &st); err != nil {
		fail(c, "create student", err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// Update replaces the record. Students cannot change their status or login link.
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dtos.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	req.Normalize()
	if middlewares.CurrentRole(c) == access.RoleStudent {
		req.Status, req.UserID = "", nil
	}
	if errs := dtos.Validate(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "fields": errs})
		return
	}
	st := req.ToModel()
	if req.Status == "" {
		st.Status = ""
	}
	updated, err := h.Students.Update(c.Request.Context(), id, st)
	if err != nil {
		fail(c, "update student", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *StudentHandler) SetStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dtos.StatusRequest
	if !bindValid(c, &req) {
		return
	}
	ctx := c.Request.Context()
	current, err := h.Students.Status(ctx, id)
	if err != nil {
		fail(c, "update status", err)
		return
	}
	if current != req.Status {
		err = h.Students.SetStatus(ctx, id, req.Status, "MANUAL_UPDATE", "Status changed from "+current+" to "+req.Status)
		if err != nil {
			fail(c, "update status", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h *StudentHandler) Events(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	events, err := h.Students.Events(c.Request.Context(), id)
	if err != nil {
		fail(c, "load events", err)
		return
	}
	c.JSON(http.StatusOK, events)
}
