package handlers

import (
	"errors"
	"net/http"

	"medibook/models"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	Service user.UserService
}

// NewAuthHandler creates an AuthHandler backed by the given service.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// setAuthCookie mirrors the token into an httpOnly cookie for browser clients.
func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("jwt", token, int(utils.TokenTTL.Seconds()), "/", "", false, true)
}

// failAuth maps user-service errors onto the stable failure shape.
func failAuth(c *gin.Context, logger *zap.Logger, err error) {
	var (
		vErr  *user.ValidationError
		dErr  *user.DuplicateEmailError
		nfErr *user.NotFoundError
		bcErr *user.BadCredentialsError
	)
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, vErr.Message)
	case errors.As(err, &dErr):
		utils.JSONError(c, http.StatusBadRequest, dErr.Error())
	case errors.As(err, &nfErr):
		utils.JSONError(c, http.StatusNotFound, nfErr.Message)
	case errors.As(err, &bcErr):
		utils.JSONError(c, http.StatusBadRequest, bcErr.Message)
	default:
		logger.Error("auth operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// RegisterHandler handles user registration.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		failAuth(c, logger, err)
		return
	}

	setAuthCookie(c, resp.Token)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully. A confirmation email has been sent.",
		"user":    resp.User,
		"token":   resp.Token,
	})
}

// LoginHandler handles user login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failAuth(c, logger, err)
		return
	}

	setAuthCookie(c, resp.Token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful.",
		"user":    resp.User,
		"token":   resp.Token,
	})
}

// GetProfileHandler returns the authenticated user's profile.
func (h *AuthHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := callerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	profile, err := h.Service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		failAuth(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

// UpdateProfileHandler updates the authenticated user's name and/or email.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := callerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.Service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		failAuth(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully.",
		"user":    updated,
	})
}

// ChangePasswordHandler verifies the current password and sets a new one.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := callerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.Service.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		failAuth(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully."})
}
