package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dineshsutihar/Hire3-sub000/internal/auth"
	"github.com/dineshsutihar/Hire3-sub000/internal/config"
	"github.com/dineshsutihar/Hire3-sub000/internal/database"
)

func TestAIRateLimiterCapsPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testCfg.JWTSecret, AIRateLimit: 2}

	r := gin.New()
	r.POST("/ai", RequireAuth(testDB, cfg), AIRateLimiter(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := auth.GenerateToken(cfg.JWTSecret, database.TestUserAlice.ID)
	require.NoError(t, err)

	call := func() *httptest.ResponseRecorder {
		req, _ := http.NewRequest(http.MethodPost, "/ai", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call().Code)
	assert.Equal(t, http.StatusOK, call().Code)

	rec := call()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestAIRateLimiterKeyedPerCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testCfg.JWTSecret, AIRateLimit: 1}

	r := gin.New()
	r.POST("/ai", RequireAuth(testDB, cfg), AIRateLimiter(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	call := func(token string) int {
		req, _ := http.NewRequest(http.MethodPost, "/ai", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	aliceToken, err := auth.GenerateToken(cfg.JWTSecret, database.TestUserAlice.ID)
	require.NoError(t, err)
	bobToken, err := auth.GenerateToken(cfg.JWTSecret, database.TestUserBob.ID)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, call(aliceToken))
	assert.Equal(t, http.StatusTooManyRequests, call(aliceToken))

	// A different caller keeps a separate window.
	assert.Equal(t, http.StatusOK, call(bobToken))
}

func TestSizeLimitRejectsOversizedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/upload", SizeLimit(1024), func(c *gin.Context) {
		if _, err := c.GetRawData(); err != nil {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusOK)
	})

	send := func(body []byte) *httptest.ResponseRecorder {
		req, _ := http.NewRequest(http.MethodPost, "/upload", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send([]byte("small body")).Code)

	oversized := []byte(strings.Repeat("x", 1024+int(multipartOverhead)+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, send(oversized).Code)
}
