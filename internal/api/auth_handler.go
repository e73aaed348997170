package api

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/platform/logger"
	"alcyxob/coachy/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type GuestResponse struct {
	Token   string `json:"token"`
	GuestID string `json:"guestId"`
}

// SessionResponse mirrors the stored session state.
type SessionResponse struct {
	UserID          string              `json:"userId"`
	Role            domain.Role         `json:"role"`
	User            *domain.SessionUser `json:"user"`
	IsGuest         bool                `json:"isGuest"`
	IsAuthenticated bool                `json:"isAuthenticated"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new member
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} UserResponse "User created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (email already exists)"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrHashingFailed):
			h.log.Error("Registration failed", "error", err)
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		default:
			h.log.Error("Registration failed", "error", err)
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login godoc
// @Summary Log in a member
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error("Login failed", "error", err)
		abortWithError(c, http.StatusInternalServerError, "Could not process login")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// ContinueAsGuest godoc
// @Summary Start a guest session
// @Tags Auth
// @Produce json
// @Success 200 {object} GuestResponse
// @Router /auth/guest [post]
func (h *AuthHandler) ContinueAsGuest(c *gin.Context) {
	token, guestID, err := h.authService.ContinueAsGuest(c.Request.Context())
	if err != nil {
		h.log.Error("Guest session failed", "error", err)
		abortWithError(c, http.StatusInternalServerError, "Could not start guest session")
		return
	}
	c.JSON(http.StatusOK, GuestResponse{Token: token, GuestID: guestID})
}

// Logout godoc
// @Summary Clear the caller's stored session
// @Tags Auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		h.log.Error("Logout failed", "user_id", userID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Could not log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Get the caller's session state
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	caller, err := principalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
		return
	}
	session, err := h.authService.Session(c.Request.Context(), caller.UserID)
	if err != nil {
		h.log.Error("Session load failed", "user_id", caller.UserID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Could not load session")
		return
	}
	c.JSON(http.StatusOK, SessionResponse{
		UserID:          caller.UserID,
		Role:            caller.Role,
		User:            session.User(),
		IsGuest:         session.IsGuest(),
		IsAuthenticated: session.IsAuthenticated(),
	})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
