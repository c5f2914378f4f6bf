package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTMiddleware(secret))
	r.GET("/whoami", func(c *gin.Context) {
		platform, _ := GetPlatform(c)
		c.String(http.StatusOK, platform)
	})
	return r
}

func TestJWTMiddleware(t *testing.T) {
	valid, err := GenerateJWT("ios", "secret", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateJWT("ios", "secret", -time.Hour)
	require.NoError(t, err)
	wrongKey, err := GenerateJWT("ios", "other", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "ios"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + wrongKey, http.StatusUnauthorized, ""},
		{"garbage", "Bearer abc.def", http.StatusUnauthorized, ""},
	}

	router := protectedRouter("secret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestGetPlatformWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetPlatform(c)
	assert.False(t, ok)
}
