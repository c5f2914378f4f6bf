package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const platformKey = "platform"

// signs a token naming the calling platform in the “sub” claim.
func GenerateJWT(platform string, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": platform,
		"exp": time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// verifies the JWT and returns the platform name.
func parseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("invalid sub claim")
	}
	return sub, nil
}

// checks “Authorization: Bearer <token>”, verifies it and sets the platform in context.
func JWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth header"})
			return
		}

		platform, err := parseToken(parts[1], secret)
		if err != nil {
			log.Warn().Err(err).Str("path", c.FullPath()).Msg("rejected platform token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(platformKey, platform)
		c.Next()
	}
}

// retrieves the platform name from Gin context (after JWTMiddleware has run).
func GetPlatform(c *gin.Context) (string, bool) {
	p, exists := c.Get(platformKey)
	if !exists {
		return "", false
	}
	platform, ok := p.(string)
	return platform, ok
}
