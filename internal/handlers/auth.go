package handlers

import (
	"errors"
	"net/http"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/auth"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/dto"
	apierrors "github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/errors"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/middleware"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates registration, login and identity lookup.
type AuthHandler struct {
	authService *services.AuthService
	jwtManager  *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtManager:  jwtManager,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string  `json:"name" binding:"required"`
		Email    string  `json:"email" binding:"required"`
		Password string  `json:"password" binding:"required"`
		Role     string  `json:"role" binding:"required"`
		Phone    *string `json:"phone"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Name, email, password, and role are required")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"user": dto.ToUserDTO(*user)})
}

// Login authenticates a user and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		apierrors.InternalError(c, "An error occurred during login")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"user":  dto.ToUserDTO(*user),
		"token": token,
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		apierrors.BadRequest(c, "Please enter a valid email address")
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, "Password must be at least 6 characters long")
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, `Role must be either "host" or "roommate"`)
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.BadRequest(c, "An account with this email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
