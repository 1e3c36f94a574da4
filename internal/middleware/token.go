package middleware

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"khata/internal/config"
	"khata/internal/models"
)

const tokenIssuer = "khata-api"

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// JWTClaims represents the claims in the JWT. Subject is the credential ID
// and ID is the server-side session ID.
type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token bound to session.
func GenerateSessionToken(credential *models.Credential, session *models.Session) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		Email: credential.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   credential.ID,
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ParseSessionToken verifies the signature and expiry of tokenString.
func ParseSessionToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("token is missing session claims")
	}
	return claims, nil
}
