// Package matcher ranks jobs against a user's skill set.
package matcher

import (
	"sort"

	"github.com/dineshsutihar/Hire3-sub000/internal/model"
)

// DefaultLimit is the number of matches returned when no limit is given.
const DefaultLimit = 10

// ScoredJob is a job annotated with its skill-overlap score.
type ScoredJob struct {
	model.Job
	MatchScore int `json:"match_score"`
}

// Rank scores every job by the count of its required skills present in the
// user's skill set (exact string match), drops zero-overlap jobs, and returns
// the top jobs in descending score order. Ties keep the order the jobs were
// loaded in.
func Rank(userSkills []string, jobs []model.Job, limit int) []ScoredJob {
	if limit <= 0 {
		limit = DefaultLimit
	}

	skillSet := make(map[string]struct{}, len(userSkills))
	for _, s := range userSkills {
		skillSet[s] = struct{}{}
	}

	scored := []ScoredJob{}
	if len(skillSet) == 0 {
		return scored
	}

	for _, job := range jobs {
		score := 0
		for _, skill := range job.SkillList() {
			if _, ok := skillSet[skill]; ok {
				score++
			}
		}
		if score == 0 {
			continue
		}
		scored = append(scored, ScoredJob{Job: job, MatchScore: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
