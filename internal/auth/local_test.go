package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/dineshsutihar/Hire3-sub000/internal/config"
	"github.com/dineshsutihar/Hire3-sub000/internal/database"
	"github.com/dineshsutihar/Hire3-sub000/internal/utilities"
)

var testDB *database.DBinstanceStruct

var testCfg = &config.Config{JWTSecret: "test-secret"}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func TestRegister_success(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testCfg)
	rec, resp, err := utilsSimulate(handler.RegisterHandler, map[string]string{
		"name":     "Dave Test",
		"email":    "dave@example.com",
		"password": "Password123!",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotNil(t, resp["access_token"])
}

func TestRegister_duplicateEmail(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testCfg)
	rec, _, err := utilsSimulate(handler.RegisterHandler, map[string]string{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "Password123!",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_shortPassword(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testCfg)
	rec, _, err := utilsSimulate(handler.RegisterHandler, map[string]string{
		"name":     "Eve Short",
		"email":    "eve@example.com",
		"password": "short",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_success(t *testing.T) {
	token, err := GetAccessToken(t, testDB, testCfg, "alice@example.com", database.TestSeedPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := ValidateToken(testCfg.JWTSecret, token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestLogin_wrongPassword(t *testing.T) {
	_, err := GetAccessToken(t, testDB, testCfg, "alice@example.com", "not-the-password")
	assert.Error(t, err)
}

func utilsSimulate(handler func(*gin.Context), body map[string]string) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	return utilities.SimulateAPICall(handler, "/auth", http.MethodPost, body)
}
