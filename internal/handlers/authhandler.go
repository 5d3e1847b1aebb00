package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobhunt/internal/auth"
	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/services"
)

type AuthHandler struct {
	UserService *services.UserService
	Tokens      *auth.TokenManager
}

func NewAuthHandler(u *services.UserService, t *auth.TokenManager) *AuthHandler {
	return &AuthHandler{UserService: u, Tokens: t}
}

// Register is the POST /register endpoint
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.RegisterResponse{Message: "User registered", UserID: user.ID})
}

// Login serves POST /login (JSON) and POST /token (form), binding by content type.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.UserService.Authenticate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := h.Tokens.Issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.Unix(),
		UserID:      user.ID,
	})
}
