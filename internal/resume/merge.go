package resume

import "strings"

// Skill length bounds applied to extracted skills before merging.
const (
	minSkillLen = 2
	maxSkillLen = 40
)

// MergeSkills unions extracted skills into the user's existing list. Each
// extracted skill is trimmed, lower-cased and length-filtered; existing
// skills are kept as stored. Duplicates collapse with set semantics, existing
// entries first.
func MergeSkills(existing, extracted []string) []string {
	merged := make([]string, 0, len(existing)+len(extracted))
	seen := make(map[string]struct{}, len(existing)+len(extracted))

	for _, s := range existing {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		merged = append(merged, s)
	}

	for _, s := range extracted {
		normalized := strings.ToLower(strings.TrimSpace(s))
		if len(normalized) < minSkillLen || len(normalized) > maxSkillLen {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		merged = append(merged, normalized)
	}

	return merged
}
