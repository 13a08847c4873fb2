package engine

import (
	"fmt"
	"math"
	"sort"

	"careercompass/internal/catalog"
)

// Experience buckets gating the small scoring bonuses.
const (
	BucketEarly = "0-1"
	BucketMid   = "2-3"
	BucketLate  = "4+"
)

const (
	requiredGapBase   = 10
	optionalGapBase   = 5
	requiredGapWeight = 3

	// Readiness parts. The four weights sum to exactly 100.
	readinessRequiredWeight = 70.0
	readinessOptionalWeight = 20.0
	readinessModelWeight    = 6.0

	maxModelBonus = 3
)

// fundamentals that an early-career candidate is nudged towards first.
var (
	coreFundamentals     = map[string]struct{}{"git": {}, "rest api": {}, "sql": {}, "testing": {}}
	languageFundamentals = map[string]struct{}{"kotlin": {}, "java": {}, "javascript": {}, "python": {}}
)

// SkillGapItem is one missing skill with its priority score and a
// human-readable explanation of how the score was composed.
type SkillGapItem struct {
	Skill      string `json:"skill"`
	Score      int    `json:"score"`
	IsRequired bool   `json:"is_required"`
	Reason     string `json:"reason"`
}

// GoalPlanResult is the full readiness picture for one target role. It is a
// pure function of (role, skill set, experience, importance map); two calls
// with identical inputs produce identical results including gap ordering and
// reason strings.
type GoalPlanResult struct {
	GoalTitle       string         `json:"goal_title"`
	MatchedSkills   []string       `json:"matched_skills"`
	MissingSkills   []SkillGapItem `json:"missing_skills"`
	ReadinessScore  int            `json:"readiness_score"`
	RequiredMatched int            `json:"required_matched"`
	RequiredTotal   int            `json:"required_total"`
	OptionalMatched int            `json:"optional_matched"`
	OptionalTotal   int            `json:"optional_total"`
}

// BuildPlan computes matched/missing skill sets, a prioritized gap list and a
// readiness score in [0, 100] for one target role. userSkills must already be
// normalized; modelImportance may be nil.
func BuildPlan(role *catalog.RoleDefinition, userSkills map[string]struct{}, experienceYears int, modelImportance map[string]float64) *GoalPlanResult {
	required := dedupe(cleanSkillList(role.RequiredSkills))
	optional := dedupe(cleanSkillList(role.OptionalSkills))

	matchedRequired, missingRequired := partition(required, userSkills)
	matchedOptional, missingOptional := partition(optional, userSkills)

	matchedAll := dedupe(append(matchedRequired, matchedOptional...))
	sort.Strings(matchedAll)

	maxImportance := maxValue(modelImportance)
	bucket := ExperienceBucket(experienceYears)

	missing := make([]SkillGapItem, 0, len(missingRequired)+len(missingOptional))
	for _, s := range missingRequired {
		bonus := modelBonus(s, modelImportance, maxImportance)
		missing = append(missing, SkillGapItem{
			Skill:      s,
			Score:      requiredGapBase + requiredGapWeight + experienceBonus(s, bucket) + bonus,
			IsRequired: true,
			Reason:     fmt.Sprintf("Required for %s. Experience bucket %s. Model bonus %d.", role.Title, bucket, bonus),
		})
	}
	for _, s := range missingOptional {
		bonus := modelBonus(s, modelImportance, maxImportance)
		missing = append(missing, SkillGapItem{
			Skill:      s,
			Score:      optionalGapBase + experienceBonus(s, bucket) + bonus,
			IsRequired: false,
			Reason:     fmt.Sprintf("Helpful for %s. Experience bucket %s. Model bonus %d.", role.Title, bucket, bonus),
		})
	}

	sort.SliceStable(missing, func(i, j int) bool {
		if missing[i].Score != missing[j].Score {
			return missing[i].Score > missing[j].Score
		}
		if missing[i].IsRequired != missing[j].IsRequired {
			return missing[i].IsRequired
		}
		return missing[i].Skill < missing[j].Skill
	})

	readiness := readinessScore(
		len(matchedRequired), len(required),
		len(matchedOptional), len(optional),
		experienceYears, modelImportance, matchedAll,
	)

	return &GoalPlanResult{
		GoalTitle:       role.Title,
		MatchedSkills:   matchedAll,
		MissingSkills:   missing,
		ReadinessScore:  readiness,
		RequiredMatched: len(matchedRequired),
		RequiredTotal:   len(required),
		OptionalMatched: len(matchedOptional),
		OptionalTotal:   len(optional),
	}
}

// ExperienceBucket maps years of experience to its named bucket.
func ExperienceBucket(years int) string {
	switch {
	case years <= 1:
		return BucketEarly
	case years <= 3:
		return BucketMid
	default:
		return BucketLate
	}
}

// experienceBonus nudges early-career candidates towards fundamentals. Other
// buckets get no per-skill bonus.
func experienceBonus(s, bucket string) int {
	if bucket != BucketEarly {
		return 0
	}
	if _, ok := coreFundamentals[s]; ok {
		return 2
	}
	if _, ok := languageFundamentals[s]; ok {
		return 1
	}
	return 0
}

// modelBonus scales the skill's externally supplied importance against the
// map's maximum into [0, maxModelBonus]. A non-positive maximum disables the
// bonus entirely.
func modelBonus(s string, importance map[string]float64, maxImportance float64) int {
	if maxImportance <= 0 {
		return 0
	}

	scaled := importance[s] / maxImportance * maxModelBonus
	bonus := int(math.Round(scaled))

	if bonus < 0 {
		return 0
	}
	if bonus > maxModelBonus {
		return maxModelBonus
	}
	return bonus
}

func readinessScore(requiredMatched, requiredTotal, optionalMatched, optionalTotal, experienceYears int, modelImportance map[string]float64, matchedSkills []string) int {
	requiredPart := matchRatio(requiredMatched, requiredTotal) * readinessRequiredWeight
	optionalPart := matchRatio(optionalMatched, optionalTotal) * readinessOptionalWeight

	var expPart float64
	switch ExperienceBucket(experienceYears) {
	case BucketEarly:
		expPart = 0
	case BucketMid:
		expPart = 2
	default:
		expPart = 4
	}

	maxImportance := maxValue(modelImportance)
	var modelPart float64
	if maxImportance > 0 && len(matchedSkills) > 0 {
		var sum float64
		for _, s := range matchedSkills {
			sum += modelImportance[s]
		}
		avg := sum / float64(len(matchedSkills))
		modelPart = clampFloat(avg/maxImportance*readinessModelWeight, 0, readinessModelWeight)
	}

	score := int(math.Round(requiredPart + optionalPart + expPart + modelPart))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func maxValue(m map[string]float64) float64 {
	var max float64
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	return max
}
