package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "khata/internal/errors"
	"khata/internal/models"
)

// RequireAdmin guards every route that changes the ledger or shows admin
// views. It must run after AuthMiddleware. Rights come only from a profile
// actually read during this request; a pending profile gets 503.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := GetProfile(c)
		if !ok {
			abortWithError(c, apperrors.ErrProfilePending)
			return
		}
		if !models.CanMutateTransactions(profile.Role) {
			c.Header("Location", AuthenticatedTarget)
			abortWithError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireProfile rejects requests whose profile has not arrived.
func RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetProfile(c); !ok {
			abortWithError(c, apperrors.ErrProfilePending)
			return
		}
		c.Next()
	}
}
