package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "khata/internal/errors"
	"khata/internal/logger"
	"khata/internal/middleware"
	"khata/internal/models"
	"khata/internal/services"
)

// AuthHandler handles sign-up, sign-in and session requests.
type AuthHandler struct {
	authService    services.AuthServicer
	profileService services.ProfileServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer, profileService services.ProfileServicer) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService}
}

// SignUpRequest represents the sign-up request payload
type SignUpRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Role     string `json:"role" binding:"omitempty,user_role"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *models.Profile `json:"profile"`
}

// SignUp handles account creation
// @Summary     Sign up
// @Description Create a credential and its profile, then start a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignUpRequest true "Sign-up data"
// @Success     201 {object} AuthResponse "Account created and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.authService.SignUp(c.Request.Context(), req.Name, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		respondWithError(c, err)
		return
	}

	credential := &models.Credential{Base: models.Base{ID: profile.ID}, Email: profile.Email}
	resp, err := h.issueToken(c, credential)
	if err != nil {
		respondWithError(c, err)
		return
	}
	resp.Profile = profile

	c.JSON(http.StatusCreated, resp)
}

// Login handles sign-in
// @Summary     Login
// @Description Authenticate with email and password and get a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Login credentials"
// @Success     200 {object} AuthResponse "Authenticated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	credential, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.issueToken(c, credential)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// A missing profile leaves the session usable but without rights.
	profile, err := h.profileService.GetProfile(c.Request.Context(), credential.ID)
	if err != nil {
		logger.Get().Warnw("profile unavailable at login", "identity", credential.ID, "error", err)
	} else {
		resp.Profile = profile
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) issueToken(c *gin.Context, credential *models.Credential) (*AuthResponse, error) {
	session, err := h.authService.StartSession(c.Request.Context(), credential.ID)
	if err != nil {
		return nil, err
	}
	token, err := middleware.GenerateSessionToken(credential, session)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &AuthResponse{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Logout ends the current session
// @Summary     Logout
// @Description Revoke the session behind the presented token
// @Tags        auth
// @Security    BearerAuth
// @Success     204 "Session ended"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.authService.EndSession(c.Request.Context(), sessionID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSession returns the resolved session
// @Summary     Current session
// @Description Get the identity, email and profile of the current session. A null profile means it is still pending.
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} middleware.Session "Session"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /session [get]
func (h *AuthHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentSession(c))
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Profile "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), identity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
