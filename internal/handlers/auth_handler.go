package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/auth"
	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/middlewares"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
)

type AuthHandler struct {
	Users    *services.UserService
	Sessions *auth.Sessions
}

func NewAuthHandler(users *services.UserService, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions}
}

// SignIn is POST /auth/signin. The token carries identity only.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dtos.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	u, err := h.Users.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, "sign in", err)
		return
	}
	tok, err := h.Sessions.Issue(u.ID, u.Email)
	if err != nil {
		fail(c, "sign in", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok, "user": u})
}

// Me reports who the caller is and the role resolved for this request.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetUint(middlewares.KeyUserID),
		"email":   c.GetString(middlewares.KeyEmail),
		"role":    middlewares.CurrentRole(c),
	})
}

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		fail(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dtos.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	u, err := h.Users.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, "create user", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
