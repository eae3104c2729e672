package job

import (
	"context"
	"encoding/json"
	"fmt"
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
	"github.com/dineshsutihar/Hire3-sub000/internal/model"
	"github.com/dineshsutihar/Hire3-sub000/internal/solana"
	"github.com/dineshsutihar/Hire3-sub000/internal/testutil"
)

var testDB *database.DBinstanceStruct

var testCfg = &config.Config{
	JWTSecret:      "test-secret",
	AdminWallet:    "Adm1nWa11etAddr1111111111111111111111111111",
	PlatformFeeSOL: 0.05,
	SolanaRPC:      "http://127.0.0.1:1",
}

// freeCfg disables the payment gate.
var freeCfg = &config.Config{
	JWTSecret:      "test-secret",
	AdminWallet:    testCfg.AdminWallet,
	PlatformFeeSOL: 0,
	SolanaRPC:      testCfg.SolanaRPC,
}

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

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	verifier := solana.NewVerifier(testDB, solana.NewClient(cfg.SolanaRPC), cfg)
	jc := NewJobController(testDB, verifier, cfg)

	r := gin.New()
	needAuth := r.Group("/api/v1", middleware.RequireAuth(testDB, cfg))
	needAuth.POST("/jobs", jc.CreateJob)
	needAuth.GET("/jobs", jc.ListJobs)
	needAuth.GET("/jobs/match", jc.MatchJobs)
	needAuth.GET("/jobs/:id", jc.GetJobByID)
	needAuth.PATCH("/jobs/:id", jc.EditJob)
	needAuth.DELETE("/jobs/:id", jc.DeleteJob)
	return r
}

func loginAs(t *testing.T, user model.User) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, testCfg, user.Email, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func TestCreateJobWithoutPayment(t *testing.T) {
	r := newRouter(testCfg)
	token := loginAs(t, database.TestUserBob)

	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Gated Job"}, token, r, "/api/v1/jobs", http.MethodPost)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, resp["error"], "payment")
}

func TestCreateJobFreeWhenFeeZero(t *testing.T) {
	r := newRouter(freeCfg)
	token := loginAs(t, database.TestUserBob)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"title":  "Free Tier Job",
		"skills": []string{"golang"},
	}, token, r, "/api/v1/jobs", http.MethodPost)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Free Tier Job", resp["title"])
	assert.Equal(t, model.JobStatusActive, resp["status"])
	assert.Equal(t, database.TestUserBob.ID.String(), resp["user_id"])
}

func TestCreateJobWithRecentPayment(t *testing.T) {
	payment := model.Payment{
		UserID:         database.TestUserAlice.ID,
		Signature:      "sig-create-job-1",
		AmountLamports: testCfg.RequiredLamports(),
		Recipient:      testCfg.AdminWallet,
		Status:         model.PaymentStatusConfirmed,
	}
	require.NoError(t, testDB.Create(&payment).Error)

	r := newRouter(testCfg)
	token := loginAs(t, database.TestUserAlice)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"title":  "Paid Job",
		"skills": []string{"golang"},
	}, token, r, "/api/v1/jobs", http.MethodPost)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Paid Job", resp["title"])
}

func TestListJobsReturnsActiveOnly(t *testing.T) {
	draft := model.Job{
		UserID: database.TestUserCarol.ID,
		EditableJobInfo: model.EditableJobInfo{
			Title:  "Unpublished Job",
			Status: model.JobStatusDraft,
		},
	}
	require.NoError(t, testDB.Create(&draft).Error)

	r := newRouter(testCfg)
	token := loginAs(t, database.TestUserBob)
	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/api/v1/jobs", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	for _, j := range jobs {
		assert.Equal(t, model.JobStatusActive, j.Status)
	}
}

func TestEditJobForbiddenForNonOwner(t *testing.T) {
	r := newRouter(testCfg)
	token := loginAs(t, database.TestUserAlice)

	rec, _ := testutil.MakeJSONRequest(gin.H{"title": "Hijacked"}, token, r,
		fmt.Sprintf("/api/v1/jobs/%d", database.TestJob1.ID), http.MethodPatch)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteJobByOwner(t *testing.T) {
	victim := model.Job{
		UserID: database.TestUserCarol.ID,
		EditableJobInfo: model.EditableJobInfo{
			Title:  "Short Lived Job",
			Status: model.JobStatusActive,
		},
	}
	require.NoError(t, testDB.Create(&victim).Error)

	r := newRouter(testCfg)
	token := loginAs(t, database.TestUserCarol)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		fmt.Sprintf("/api/v1/jobs/%d", victim.ID), http.MethodDelete)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, token, r,
		fmt.Sprintf("/api/v1/jobs/%d", victim.ID), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJobDoesNotCountViews(t *testing.T) {
	viewed := model.Job{
		UserID: database.TestUserCarol.ID,
		EditableJobInfo: model.EditableJobInfo{
			Title:  "Watched Job",
			Status: model.JobStatusActive,
		},
	}
	require.NoError(t, testDB.Create(&viewed).Error)

	r := newRouter(testCfg)
	token := loginAs(t, database.TestUserBob)
	route := fmt.Sprintf("/api/v1/jobs/%d", viewed.ID)

	// The views column is carried on the row but reads never increment it.
	for i := 0; i < 2; i++ {
		rec, resp := testutil.MakeJSONRequest(nil, token, r, route, http.MethodGet)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(0), resp["views"])
	}

	var stored model.Job
	require.NoError(t, testDB.Where("id = ?", viewed.ID).First(&stored).Error)
	assert.Equal(t, 0, stored.Views)
}

func TestMatchJobsRanking(t *testing.T) {
	r := newRouter(testCfg)
	token := loginAs(t, database.TestUserAlice)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/api/v1/jobs/match", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	var matches []struct {
		Title      string `json:"title"`
		MatchScore int    `json:"match_score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))

	// Alice has react and node: the fullstack job overlaps on two skills,
	// the frontend job on one, the css-only job on none.
	require.Len(t, matches, 2)
	assert.Equal(t, "Fullstack Engineer", matches[0].Title)
	assert.Equal(t, 2, matches[0].MatchScore)
	assert.Equal(t, "Frontend Engineer", matches[1].Title)
	assert.Equal(t, 1, matches[1].MatchScore)
}

func TestMatchJobsEmptyForUserWithoutSkills(t *testing.T) {
	r := newRouter(testCfg)
	token := loginAs(t, database.TestUserBob)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/api/v1/jobs/match", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
