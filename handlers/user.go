package handlers

import (
	"errors"
	"net/http"

	"mechradii/middleware"
	"mechradii/services/user"
	"mechradii/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account endpoints.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// SignUpHandler handles POST /auth/signup.
func (h *UserHandler) SignUpHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.UserService.RegisterUser(req.FullName, req.Email, req.Password)
	if err != nil {
		var ve user.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
		case errors.Is(err, user.ErrEmailInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		default:
			logger.Error("Sign up failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign up failed, please try again"})
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SignInHandler handles POST /auth/signin.
func (h *UserHandler) SignInHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.UserService.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.Error("Sign in failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign in failed, please try again"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignOutHandler handles POST /auth/signout.
func (h *UserHandler) SignOutHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	if err := h.UserService.RevokeUserAuthToken(userID); err != nil {
		utils.GetLogger().Error("Sign out failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign out failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// GetProfileHandler handles GET /users/me.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	profile, err := h.UserService.GetUserByID(userID)
	if err != nil {
		utils.GetLogger().Error("Profile not found", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler handles PUT /users/me.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var req struct {
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.UserService.UpdateProfile(userID, req.FullName, req.AvatarURL)
	if err != nil {
		var ve user.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
			return
		}
		utils.GetLogger().Error("Profile update failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile update failed"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateFCMTokenHandler handles PUT /users/me/fcm-token. The client calls it
// whenever the device push token rotates.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.UserService.UpdateFCMToken(userID, req.Token); err != nil {
		utils.GetLogger().Error("FCM token update failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token updated"})
}

// DeleteAccountHandler handles DELETE /users/me.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	if err := h.UserService.DeleteUser(userID); err != nil {
		utils.GetLogger().Error("Account deletion failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account deletion failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
