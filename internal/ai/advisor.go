// Package ai defines the optional advice surface: turning a computed gap
// plan into personalized learning guidance. Scoring never depends on it.
package ai

import "context"

// Gap is the part of a gap plan an advisor needs to reason about.
type Gap struct {
	Skill      string
	IsRequired bool
	Score      int
	Reason     string
}

// Advice is generated learning guidance for one missing skill.
type Advice struct {
	Skill string
	Why   string
	Steps []string
	Raw   string
}

// Advisor generates learning advice for the gaps of one goal role.
type Advisor interface {
	Advise(ctx context.Context, goalTitle string, experienceYears int, gaps []Gap) ([]*Advice, error)
}
