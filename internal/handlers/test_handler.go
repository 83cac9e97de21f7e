package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
)

type TestHandler struct {
	Tests *services.TestService
}

func NewTestHandler(tests *services.TestService) *TestHandler {
	return &TestHandler{Tests: tests}
}

// List is GET /students/:id/tests. Observing a skill pass may advance the
// student's status in the background.
func (h *TestHandler) List(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	tests, err := h.Tests.List(c.Request.Context(), id)
	if err != nil {
		fail(c, "load tests", err)
		return
	}
	h.Tests.Rule.ObserveTests(id, tests)
	c.JSON(http.StatusOK, tests)
}

func (h *TestHandler) Record(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dtos.TestRequest
	if !bindValid(c, &req) {
		return
	}
	t, err := h.Tests.Record(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, "record test", err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TestHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	testID, ok := uintParam(c, "testId")
	if !ok {
		return
	}
	if err := h.Tests.Delete(c.Request.Context(), id, testID); err != nil {
		fail(c, "delete test", err)
		return
	}
	c.Status(http.StatusNoContent)
}
