package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow/taskflow-api/internal/auth"
	"github.com/taskflow/taskflow-api/internal/dto"
	"github.com/taskflow/taskflow-api/internal/httputil"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/services"
)

// UserHandler coordinates user and authentication HTTP handlers.
type UserHandler struct {
	authService *services.AuthService
	tokens      *auth.TokenManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{
		authService: authService,
		tokens:      tokens,
	}
}

// Register creates a local-password user and returns a session token.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		httputil.InternalError(c, "Server error during registration")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    dto.ToUserDTO(*user),
	})
}

// Login authenticates email/password credentials and returns a session token.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		httputil.InternalError(c, "Server error during login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    dto.ToUserDTO(*user),
	})
}

// OAuthLogin exchanges an external identity token for a session token,
// creating or linking the local user as needed.
func (h *UserHandler) OAuthLogin(c *gin.Context) {
	var req dto.OAuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "ID token is required")
		return
	}

	user, err := h.authService.OAuthLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		httputil.InternalError(c, "Server error during login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OAuth login successful",
		"token":   token,
		"user":    dto.ToUserDTO(*user),
	})
}

// GetMe returns the authenticated caller's record.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		httputil.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	httputil.OK(c, http.StatusOK, "", dto.ToUserDTO(*user))
}

// UpdateProfile updates the caller's name and email.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		httputil.Unauthorized(c, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BindError(c, err)
		return
	}

	user, err := h.authService.UpdateProfile(userID, services.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	httputil.OK(c, http.StatusOK, "Profile updated successfully", dto.ToUserDTO(*user))
}

// ListUsers returns all users. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		httputil.InternalError(c, "Server error getting users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(users),
		"data":    dto.ToUserDTOs(users),
	})
}

func (h *UserHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		httputil.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		httputil.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, services.ErrAccountDeactivated):
		httputil.Unauthorized(c, "Account is deactivated")
	case errors.Is(err, services.ErrUserNotFound):
		httputil.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOAuthUnavailable),
		errors.Is(err, auth.ErrInvalidIdentityToken):
		// Misconfigured verifier and rejected token get the same response;
		// the server-side reason only goes to the log.
		log.Printf("oauth login failed: %v", err)
		httputil.Unauthorized(c, "OAuth authentication failed")
	default:
		log.Printf("auth error: %v", err)
		httputil.InternalError(c, "")
	}
}
