package user

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/dineshsutihar/Hire3-sub000/internal/auth"
	"github.com/dineshsutihar/Hire3-sub000/internal/config"
	"github.com/dineshsutihar/Hire3-sub000/internal/database"
	"github.com/dineshsutihar/Hire3-sub000/internal/middleware"
	"github.com/dineshsutihar/Hire3-sub000/internal/testutil"
)

var testDB *database.DBinstanceStruct

var testCfg = &config.Config{JWTSecret: "test-secret"}

func TestMain(m *testing.M) {
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

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	uc := NewUserController(testDB)

	r := gin.New()
	needAuth := r.Group("/api/v1", middleware.RequireAuth(testDB, testCfg))
	needAuth.GET("/profile", uc.GetProfile)
	needAuth.PATCH("/profile", uc.EditProfile)
	return r
}

func TestGetProfile(t *testing.T) {
	r := newRouter()
	token, err := auth.GetAccessToken(t, testDB, testCfg, database.TestUserAlice.Email, database.TestSeedPassword)
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/api/v1/profile", http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestUserAlice.Email, resp["email"])
	// Password hashes never leave the API.
	assert.NotContains(t, resp, "password")
}

func TestEditProfilePartialUpdate(t *testing.T) {
	r := newRouter()
	token, err := auth.GetAccessToken(t, testDB, testCfg, database.TestUserBob.Email, database.TestSeedPassword)
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"bio":            "Backend engineer",
		"wallet_address": "BobWa11etAddr111111111111111111111111111111",
	}, token, r, "/api/v1/profile", http.MethodPatch)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Backend engineer", resp["bio"])
	assert.Equal(t, "BobWa11etAddr111111111111111111111111111111", resp["wallet_address"])
	// Fields absent from the body keep their stored value.
	assert.Equal(t, database.TestUserBob.Name, resp["name"])
}

func TestEditProfileUpdatesSkills(t *testing.T) {
	r := newRouter()
	token, err := auth.GetAccessToken(t, testDB, testCfg, database.TestUserBob.Email, database.TestSeedPassword)
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"skills": []string{"go", "postgres"},
	}, token, r, "/api/v1/profile", http.MethodPatch)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"go", "postgres"}, resp["skills"])
}
