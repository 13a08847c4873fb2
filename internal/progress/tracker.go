// Package progress keeps a stable action-plan view across user completions.
//
// The missing-skill ranking is computed once from the base (uncompleted)
// skill set and cached. Completion toggles rescore the plan with
// base ∪ completed so the readiness score moves, but the rendered list stays
// the cached one with done flags; marking a skill done never makes it vanish.
package progress

import (
	"sort"
	"strings"
	"sync"

	"careercompass/internal/catalog"
	"careercompass/internal/engine"
)

// DefaultTopN bounds the cached gap list shown to the user.
const DefaultTopN = 10

// Item is one cached gap entry with its live completion state.
type Item struct {
	Skill      string `json:"skill"`
	Score      int    `json:"score"`
	IsRequired bool   `json:"is_required"`
	Reason     string `json:"reason"`
	Done       bool   `json:"done"`
}

// Session tracks one goal for one base skill set. A Session serializes its
// own reads and recomputes; concurrent toggles on the same Session apply one
// at a time. Distinct sessions are fully independent.
type Session struct {
	mu sync.Mutex

	role            *catalog.RoleDefinition
	baseSkills      map[string]struct{}
	experienceYears int
	modelImportance map[string]float64

	cached    []engine.SkillGapItem
	completed map[string]struct{}
	plan      *engine.GoalPlanResult
}

// NewSession builds the stable gap list from the base skills and applies any
// previously persisted completions.
func NewSession(role *catalog.RoleDefinition, baseSkills map[string]struct{}, experienceYears int, modelImportance map[string]float64, completed []string, topN int) *Session {
	if topN <= 0 {
		topN = DefaultTopN
	}

	basePlan := engine.BuildPlan(role, baseSkills, experienceYears, modelImportance)

	cached := basePlan.MissingSkills
	if len(cached) > topN {
		cached = cached[:topN]
	}

	s := &Session{
		role:            role,
		baseSkills:      baseSkills,
		experienceYears: experienceYears,
		modelImportance: modelImportance,
		cached:          cached,
		completed:       make(map[string]struct{}, len(completed)),
	}

	for _, c := range completed {
		token := strings.ToLower(strings.TrimSpace(c))
		if token != "" {
			s.completed[token] = struct{}{}
		}
	}

	s.rescore()
	return s
}

// SetDone toggles one cached skill's completion state and rescores the plan.
func (s *Session) SetDone(skill string, done bool) {
	token := strings.ToLower(strings.TrimSpace(skill))
	if token == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if done {
		s.completed[token] = struct{}{}
	} else {
		delete(s.completed, token)
	}

	s.rescore()
}

// rescore recomputes the plan over base ∪ completed. Callers hold the lock
// except during construction.
func (s *Session) rescore() {
	effective := make(map[string]struct{}, len(s.baseSkills)+len(s.completed))
	for token := range s.baseSkills {
		effective[token] = struct{}{}
	}
	for token := range s.completed {
		effective[token] = struct{}{}
	}

	s.plan = engine.BuildPlan(s.role, effective, s.experienceYears, s.modelImportance)
}

// Items renders the cached gap list, flagging completed entries. Length and
// order never change for the lifetime of the session.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, 0, len(s.cached))
	for _, gap := range s.cached {
		_, done := s.completed[gap.Skill]
		items = append(items, Item{
			Skill:      gap.Skill,
			Score:      gap.Score,
			IsRequired: gap.IsRequired,
			Reason:     gap.Reason,
			Done:       done,
		})
	}

	return items
}

// Plan returns the live (rescored) plan reflecting completions.
func (s *Session) Plan() *engine.GoalPlanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// Readiness returns the live readiness score.
func (s *Session) Readiness() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.ReadinessScore
}

// Completed lists completed skills, sorted for determinism.
func (s *Session) Completed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make([]string, 0, len(s.completed))
	for token := range s.completed {
		completed = append(completed, token)
	}
	sort.Strings(completed)

	return completed
}
