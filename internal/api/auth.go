package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawtrail/backend/internal/middleware"
	"github.com/pawtrail/backend/internal/service"
	"github.com/pawtrail/backend/internal/types"
	"github.com/pawtrail/backend/internal/validation"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in types.RegisterInput
	if !bindInput(c, &in) {
		return
	}

	if errs := validation.Register(in); errs.Any() {
		respondValidation(c, errs)
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondValidation(c, validation.Errors{
				"email": {"The email has already been taken."},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in types.LoginInput
	if !bindInput(c, &in) {
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	v, exists := c.Get("token_claims")
	claims, ok := v.(*middleware.TokenClaims)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	user, err := h.auth.UserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
