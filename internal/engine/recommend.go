// Package engine implements the pure scoring core: role ranking and goal
// readiness planning. Every function here is a deterministic function of its
// inputs with no I/O and no shared state, so independent callers can invoke
// them concurrently without coordination.
package engine

import (
	"sort"
	"strings"

	"careercompass/internal/catalog"
)

const (
	requiredRatioWeight = 0.75
	optionalRatioWeight = 0.25
	interestTagBonus    = 0.05
)

// Recommendation scores one role for one candidate. Score is in [0, 1]; the
// matched and missing lists exist so the ranking can be explained, not just
// asserted.
type Recommendation struct {
	RoleID          string   `json:"role_id"`
	Title           string   `json:"title"`
	Score           float64  `json:"score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingRequired []string `json:"missing_required"`
	MissingOptional []string `json:"missing_optional"`
}

// Rank scores every role against the candidate's normalized skills and
// interests and returns the top K recommendations, best first. Ties keep
// catalog order.
func Rank(userSkills, userInterests map[string]struct{}, roles []catalog.RoleDefinition, topK int) []Recommendation {
	recommendations := make([]Recommendation, 0, len(roles))

	for _, role := range roles {
		recommendations = append(recommendations, scoreRole(role, userSkills, userInterests))
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if topK >= 0 && len(recommendations) > topK {
		recommendations = recommendations[:topK]
	}

	return recommendations
}

func scoreRole(role catalog.RoleDefinition, userSkills, userInterests map[string]struct{}) Recommendation {
	required := cleanSkillList(role.RequiredSkills)
	optional := cleanSkillList(role.OptionalSkills)

	matchedRequired, missingRequired := partition(required, userSkills)
	matchedOptional, missingOptional := partition(optional, userSkills)

	score := requiredRatioWeight*matchRatio(len(matchedRequired), len(required)) +
		optionalRatioWeight*matchRatio(len(matchedOptional), len(optional))

	for _, tag := range role.Tags {
		if _, ok := userInterests[strings.ToLower(strings.TrimSpace(tag))]; ok {
			score += interestTagBonus
		}
	}

	return Recommendation{
		RoleID:          role.ID,
		Title:           role.Title,
		Score:           clampFloat(score, 0, 1),
		MatchedSkills:   dedupe(append(matchedRequired, matchedOptional...)),
		MissingRequired: missingRequired,
		MissingOptional: missingOptional,
	}
}

// matchRatio treats an empty skill list as fully satisfied.
func matchRatio(matched, total int) float64 {
	if total <= 0 {
		return 1.0
	}
	return float64(matched) / float64(total)
}

// cleanSkillList lower-cases, trims and drops blank entries while keeping
// the declared order.
func cleanSkillList(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}

func partition(skills []string, userSkills map[string]struct{}) (matched, missing []string) {
	matched = make([]string, 0, len(skills))
	missing = make([]string, 0, len(skills))

	for _, s := range skills {
		if _, ok := userSkills[s]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	return matched, missing
}

func dedupe(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	result := make([]string, 0, len(skills))
	for _, s := range skills {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
