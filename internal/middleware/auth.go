package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"finbook/internal/config"
	"finbook/internal/models"
)

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// JWTClaims represents the claims in the JWT
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken generates a signed JWT for a user, valid for the configured
// duration (7 days by default).
func GenerateToken(user *models.User) (string, error) {
	claims := &JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "finbook-api",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ValidateToken parses and verifies a token string. It fails closed: a bad
// signature, wrong algorithm, or expired token all yield (0, false).
func ValidateToken(tokenString string) (uint, bool) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})

	if err != nil || !token.Valid {
		return 0, false
	}
	return claims.UserID, true
}

// extractBearer pulls the token out of an Authorization header. Exactly two
// segments ("Bearer" + token) are required; anything else counts as absent.
func extractBearer(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired verifies the bearer token and sets the user identity in the
// context. Requests without a token are rejected with 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearer(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token"})
			c.Abort()
			return
		}

		userID, valid := ValidateToken(tokenString)
		if !valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// AuthOptional resolves the user identity when a valid bearer token is
// present but lets the request through unauthenticated otherwise.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := extractBearer(c.GetHeader("Authorization")); ok {
			if userID, valid := ValidateToken(tokenString); valid {
				c.Set("userID", userID)
			}
		}
		c.Next()
	}
}
