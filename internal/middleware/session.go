package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "khata/internal/errors"
	"khata/internal/logger"
	"khata/internal/models"
)

// Context keys set by AuthMiddleware.
const (
	identityKey  = "identity"
	sessionIDKey = "sessionID"
	emailKey     = "email"
	profileKey   = "profile"
)

// SessionValidator reports the identity behind a server-side session.
type SessionValidator interface {
	SessionIdentity(ctx context.Context, sessionID string) (string, error)
}

// ProfileFetcher reads the profile of an identity.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

// Session is the resolved state of a request's credentials.
// Loading is always false once resolution returns; a nil Profile on an
// authenticated session means the profile is still pending.
type Session struct {
	Authenticated bool            `json:"authenticated"`
	Identity      string          `json:"identity,omitempty"`
	Email         string          `json:"email,omitempty"`
	Profile       *models.Profile `json:"profile"`
	Loading       bool            `json:"loading"`
	SessionID     string          `json:"-"`
}

// SessionResolver turns a bearer token into a Session.
type SessionResolver struct {
	sessions       SessionValidator
	profiles       ProfileFetcher
	profileTimeout time.Duration
}

// NewSessionResolver creates a resolver. Profile reads taking longer than
// profileTimeout leave the profile pending.
func NewSessionResolver(sessions SessionValidator, profiles ProfileFetcher, profileTimeout time.Duration) *SessionResolver {
	return &SessionResolver{sessions: sessions, profiles: profiles, profileTimeout: profileTimeout}
}

// Resolve verifies the Authorization header value. A missing, malformed,
// expired or revoked token yields an unauthenticated Session and no error.
// Only store failures during session lookup are returned as errors.
func (r *SessionResolver) Resolve(ctx context.Context, authHeader string) (*Session, error) {
	tokenString, ok := bearerToken(authHeader)
	if !ok {
		return &Session{}, nil
	}

	claims, err := ParseSessionToken(tokenString)
	if err != nil {
		return &Session{}, nil
	}

	identity, err := r.sessions.SessionIdentity(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return &Session{}, nil
		}
		return nil, err
	}
	if identity != claims.Subject {
		return &Session{}, nil
	}

	return &Session{
		Authenticated: true,
		Identity:      identity,
		Email:         claims.Email,
		Profile:       r.fetchProfile(ctx, identity),
		SessionID:     claims.ID,
	}, nil
}

func (r *SessionResolver) fetchProfile(ctx context.Context, identity string) *models.Profile {
	ctx, cancel := context.WithTimeout(ctx, r.profileTimeout)
	defer cancel()

	profile, err := r.profiles.GetProfile(ctx, identity)
	switch {
	case err == nil:
		return profile
	case errors.Is(err, apperrors.ErrProfileNotFound):
		logger.Get().Warnw("profile not found for session", "identity", identity)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		logger.Get().Warnw("profile fetch timed out", "identity", identity, "timeout", r.profileTimeout)
	default:
		logger.Get().Errorw("profile fetch failed", "identity", identity, "error", err)
	}
	return nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware rejects requests without a live session and stores the
// resolved identity and profile in the context.
func AuthMiddleware(resolver *SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
			return
		}
		if !session.Authenticated {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		SetSession(c, session)
		c.Next()
	}
}

// SetSession stores an authenticated session in the context.
func SetSession(c *gin.Context, session *Session) {
	c.Set(identityKey, session.Identity)
	c.Set(sessionIDKey, session.SessionID)
	c.Set(emailKey, session.Email)
	if session.Profile != nil {
		c.Set(profileKey, session.Profile)
	}
}

// GetIdentity returns the authenticated identity.
func GetIdentity(c *gin.Context) (string, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GetSessionID returns the ID of the current server-side session.
func GetSessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(sessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GetEmail returns the email carried by the session token.
func GetEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}

// GetProfile returns the profile read for this request, if it arrived.
func GetProfile(c *gin.Context) (*models.Profile, bool) {
	v, ok := c.Get(profileKey)
	if !ok {
		return nil, false
	}
	profile, ok := v.(*models.Profile)
	return profile, ok && profile != nil
}

// CurrentSession rebuilds the Session view from the context.
func CurrentSession(c *gin.Context) *Session {
	identity, ok := GetIdentity(c)
	if !ok {
		return &Session{}
	}
	profile, _ := GetProfile(c)
	return &Session{
		Authenticated: true,
		Identity:      identity,
		Email:         GetEmail(c),
		Profile:       profile,
	}
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// UnauthenticatedTarget and AuthenticatedTarget are where unknown paths redirect.
const (
	UnauthenticatedTarget = "/api/v1/auth/login"
	AuthenticatedTarget   = "/api/v1/transactions"
)

// RedirectUnknown sends unknown paths to the ledger when a valid session is
// presented and to the login endpoint otherwise.
func RedirectUnknown(resolver *SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := UnauthenticatedTarget
		if session, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization")); err == nil && session.Authenticated {
			target = AuthenticatedTarget
		}
		c.Redirect(http.StatusFound, target)
	}
}
