package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
)

// fail maps service errors onto status codes. Unknown errors are logged and
// reported as 500 without details.
func fail(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND"})
	case errors.Is(err, services.ErrUploadRejected):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	default:
		log.Printf("❌ %s %s: %s failed: %v", c.Request.Method, c.FullPath(), action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
}

// bindValid decodes the body and runs the form rules. It writes the 400
// itself and returns false when the request is rejected.
func bindValid(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		badJSON(c, err)
		return false
	}
	if errs := dtos.Validate(v); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "fields": errs})
		return false
	}
	return true
}

// uintParam reads a positive numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(n), true
}

func uintQuery(c *gin.Context, name string) uint {
	n, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(n)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
