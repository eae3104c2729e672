package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var testDB *DBinstanceStruct

func TestMain(m *testing.M) {
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = GetTestDB()
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

func TestHealth(t *testing.T) {
	stats := testDB.Health()
	assert.Equal(t, "up", stats["status"])
}

func TestSeededFixtures(t *testing.T) {
	require.NotEqual(t, "", TestUserAlice.ID.String())
	assert.Equal(t, []string{"react", "node"}, []string(TestUserAlice.Skills))
	assert.NotZero(t, TestJob1.ID)
	assert.Equal(t, []string{"react", "node", "css"}, TestJob2.SkillList())
}
