package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dineshsutihar/Hire3-sub000/internal/model"
)

func job(id uint, skills []string) model.Job {
	j := model.Job{ID: id}
	j.Skills = model.EncodeStringList(skills)
	return j
}

func TestRank_ordering(t *testing.T) {
	jobs := []model.Job{
		job(1, []string{"react"}),
		job(2, []string{"react", "node", "css"}),
		job(3, []string{"css"}),
	}

	ranked := Rank([]string{"react", "node"}, jobs, 10)

	require.Len(t, ranked, 2)
	assert.Equal(t, uint(2), ranked[0].ID)
	assert.Equal(t, 2, ranked[0].MatchScore)
	assert.Equal(t, uint(1), ranked[1].ID)
	assert.Equal(t, 1, ranked[1].MatchScore)
}

func TestRank_emptySkills(t *testing.T) {
	jobs := []model.Job{job(1, []string{"react"})}
	assert.Empty(t, Rank(nil, jobs, 10))
	assert.Empty(t, Rank([]string{}, jobs, 10))
}

func TestRank_limit(t *testing.T) {
	jobs := []model.Job{
		job(1, []string{"go"}),
		job(2, []string{"go"}),
		job(3, []string{"go"}),
	}
	assert.Len(t, Rank([]string{"go"}, jobs, 2), 2)
	// limit <= 0 falls back to the default
	assert.Len(t, Rank([]string{"go"}, jobs, 0), 3)
}

func TestRank_caseSensitive(t *testing.T) {
	jobs := []model.Job{job(1, []string{"React"})}
	assert.Empty(t, Rank([]string{"react"}, jobs, 10))
}

func TestRank_malformedSkillJSON(t *testing.T) {
	corrupted := model.Job{ID: 7}
	corrupted.Skills = `{"not":"an array"`

	ranked := Rank([]string{"react"}, []model.Job{corrupted, job(8, []string{"react"})}, 10)

	require.Len(t, ranked, 1)
	assert.Equal(t, uint(8), ranked[0].ID)
}

func TestRank_tiesKeepLoadOrder(t *testing.T) {
	jobs := []model.Job{
		job(5, []string{"go"}),
		job(6, []string{"go"}),
	}
	ranked := Rank([]string{"go"}, jobs, 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, uint(5), ranked[0].ID)
	assert.Equal(t, uint(6), ranked[1].ID)
}
