package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/askbook/askbook-api/internal/identity"
	"github.com/askbook/askbook-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

// CredentialsRequest is the body of /register and /login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	identity *identity.Service
}

func NewAuthHandler(svc *identity.Service) *AuthHandler {
	return &AuthHandler{identity: svc}
}

// Register routes at the root
func (h *AuthHandler) Register(rg gin.IRoutes) {
	rg.POST("/register", h.SignUp)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
}

// bindCredentials parses an optional JSON body. Field presence is left to the identity provider.
func bindCredentials(c *gin.Context) (CredentialsRequest, error) {
	var req CredentialsRequest
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

// SignUp creates an account and returns the provider's user record.
func (h *AuthHandler) SignUp(c *gin.Context) {
	req, err := bindCredentials(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.identity.Register(context.WithoutCancel(c.Request.Context()), req.Email, req.Password)
	if err != nil {
		logger.Debugf("register rejected: %v", err)
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login mints a custom token for the account registered under the given email.
func (h *AuthHandler) Login(c *gin.Context) {
	req, err := bindCredentials(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	token, err := h.identity.Login(context.WithoutCancel(c.Request.Context()), req.Email, req.Password)
	if err != nil {
		logger.Debugf("login rejected: %v", err)
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout holds no server-side session, so it always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.String(http.StatusOK, "Logged out successfully")
}
