package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"patitas/services/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandler exposes account lifecycle and profile endpoints.
type UserHandler struct {
	Service user.UserService
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(c *gin.Context) {
	logger := getLogger(c)

	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// SignIn handles POST /api/users/login.
func (h *UserHandler) SignIn(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to sign in user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FirebaseSignIn handles POST /api/users/firebase.
func (h *UserHandler) FirebaseSignIn(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.FirebaseSignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrFirebaseDisabled):
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed firebase sign-in", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Profile handles GET /api/users/me.
func (h *UserHandler) Profile(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, err := h.Service.Profile(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get user profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateAvatar handles POST /api/users/me/avatar with a multipart image.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing avatar file"})
		return
	}

	// Stage the upload in a temp file for the storage backend.
	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		logger.Error("Failed to stage avatar upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process upload"})
		return
	}
	defer os.Remove(tmpPath)

	url, err := h.Service.UpdateAvatar(c.Request.Context(), userID.(string), tmpPath)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, user.ErrStorageDisabled) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update avatar", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}

// RevokeToken handles DELETE /api/users/revoke.
func (h *UserHandler) RevokeToken(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Service.RevokeToken(c.Request.Context(), userID.(string)); err != nil {
		logger.Error("Failed to revoke token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token revoked"})
}
