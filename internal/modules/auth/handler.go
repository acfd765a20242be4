package auth

import (
	"errors"
	"net/http"
	"strings"

	"taskhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/logout", h.Logout)
		authGroup.GET("/logout-all", h.LogoutAll)
		authGroup.GET("/profile", h.Profile)
		authGroup.PATCH("/change-password", h.ChangePassword)
	}
}

// Register creates a new account and opens the first session.
// @Summary		Register user
// @Description	Creates an account and returns an access/refresh token pair for the new session.
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"name, email, password, password_confirmation"
// @Success		201	{object}	response.Envelope "Registered, token pair returned"
// @Failure		400	{object}	response.Envelope "Validation failed or passwords do not match"
// @Failure		409	{object}	response.Envelope "Email already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	tokens, err := h.service.Register(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			response.Error(c, http.StatusBadRequest, "Passwords do not match")
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "Email already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", tokens)
}

// Login authenticates by email and password.
// @Summary		Login user
// @Description	Verifies credentials and returns a fresh access/refresh token pair.
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"email, password"
// @Success		200	{object}	response.Envelope "Token pair returned"
// @Failure		400	{object}	response.Envelope "Invalid credentials"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// Unknown email and wrong password answer identically.
			response.Error(c, http.StatusBadRequest, "Invalid credentials")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, "User logged in successfully", tokens)
}

// Refresh rotates a refresh token into a new token pair.
// @Summary		Refresh access token
// @Description	Exchanges a single-use refresh token for a new pair; the consumed token is revoked.
// @Tags		Auth
// @Param		request	body	RefreshRequest	true	"refreshToken"
// @Success		200	{object}	response.Envelope "New token pair returned"
// @Failure		401	{object}	response.Envelope "Refresh token missing, revoked or expired"
// @Router		/auth/refresh [POST]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Refresh token is required", err.Error())
		return
	}

	tokens, err := h.service.RefreshAccessToken(c.Request.Context(), req.RefreshToken, requestMeta(c))
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	response.Success(c, http.StatusOK, "Access token refreshed successfully", tokens)
}

// Logout closes the current session.
// @Summary		Logout user
// @Description	Blacklists the presented access token and revokes the oldest active refresh token.
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	response.Envelope "Logged out"
// @Failure		401	{object}	response.Envelope "Missing or invalid token"
// @Router		/auth/logout [GET]
func (h *Handler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "Authorization token is required")
		return
	}

	if err := h.service.Logout(c.Request.Context(), c.GetString("user_id"), token); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// LogoutAll closes every session of the user.
// @Summary		Logout from all devices
// @Description	Blacklists the presented access token and revokes every active refresh token of the user.
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	response.Envelope "All sessions closed"
// @Failure		401	{object}	response.Envelope "Missing or invalid token"
// @Router		/auth/logout-all [GET]
func (h *Handler) LogoutAll(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "Authorization token is required")
		return
	}

	if err := h.service.LogoutAll(c.Request.Context(), c.GetString("user_id"), token); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	response.Success(c, http.StatusOK, "Logged out from all devices successfully", nil)
}

// Profile returns the authenticated user.
// @Summary		Get user profile
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	response.Envelope "Profile"
// @Failure		401	{object}	response.Envelope "Missing or invalid token"
// @Router		/auth/profile [GET]
func (h *Handler) Profile(c *gin.Context) {
	user, err := h.service.GetUserByID(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if user == nil {
		response.Error(c, http.StatusBadRequest, "User not found")
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", UserPublic{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

// ChangePassword rotates the credential and kills all standing sessions.
// @Summary		Change user password
// @Description	Verifies the old password, stores the new one and revokes every refresh token.
// @Tags		Auth
// @Security	BearerAuth
// @Param		request	body	ChangePasswordRequest	true	"oldPassword, newPassword, password_confirmation"
// @Success		200	{object}	response.Envelope "Password changed"
// @Failure		400	{object}	response.Envelope "Validation failed, wrong old password or new equals old"
// @Failure		401	{object}	response.Envelope "Missing or invalid token"
// @Router		/auth/change-password [PATCH]
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			response.Error(c, http.StatusBadRequest, "Passwords do not match")
		case errors.Is(err, ErrOldPasswordIncorrect):
			response.Error(c, http.StatusBadRequest, "Old password is incorrect")
		case errors.Is(err, ErrSamePassword):
			response.Error(c, http.StatusBadRequest, "New password cannot be the same as old password")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

func requestMeta(c *gin.Context) RequestMeta {
	return RequestMeta{
		DeviceName: c.Request.UserAgent(),
		IPAddress:  c.ClientIP(),
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return token, token != ""
}
