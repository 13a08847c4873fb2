// Package content serves the learning-content lookup used when a gap plan is
// presented. Entries are keyed by normalized skill token; a templated
// fallback covers skills without a curated entry.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LearningContent explains why a skill matters and how to pick it up.
type LearningContent struct {
	Skill string   `json:"skill"`
	Why   string   `json:"why"`
	Steps []string `json:"steps"`
}

// Library is a read-only lookup of curated learning content.
type Library struct {
	entries map[string]LearningContent
}

// LoadFile reads a JSON array of learning-content entries. A missing file
// yields an empty library; every lookup then synthesizes a fallback.
func LoadFile(path string) (*Library, error) {
	if path == "" {
		return &Library{entries: map[string]LearningContent{}}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Library{entries: map[string]LearningContent{}}, nil
		}
		return nil, fmt.Errorf("read learning content: %w", err)
	}

	return Parse(data)
}

// Parse builds a Library from a JSON array payload.
func Parse(data []byte) (*Library, error) {
	var list []LearningContent
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse learning content: %w", err)
	}

	entries := make(map[string]LearningContent, len(list))
	for _, entry := range list {
		key := strings.ToLower(strings.TrimSpace(entry.Skill))
		if key == "" {
			continue
		}
		entries[key] = entry
	}

	return &Library{entries: entries}, nil
}

// Lookup returns the curated entry for the skill, or a synthesized generic
// entry when none exists.
func (l *Library) Lookup(skill string) LearningContent {
	key := strings.ToLower(strings.TrimSpace(skill))
	if entry, ok := l.entries[key]; ok {
		return entry
	}
	return Fallback(skill)
}

// Fallback synthesizes a generic learning entry templated on the skill name.
func Fallback(skill string) LearningContent {
	s := strings.ToLower(strings.TrimSpace(skill))
	return LearningContent{
		Skill: s,
		Why:   "Recommended for improving your goal readiness.",
		Steps: []string{
			fmt.Sprintf("Search a beginner tutorial for %s and complete it.", s),
			fmt.Sprintf("Build a small demo project using %s.", s),
			fmt.Sprintf("Apply %s inside one of your existing projects.", s),
		},
	}
}
