// Package catalog loads the static role catalog and the skill-importance map
// consumed by the scoring engine. Both are read-only for the lifetime of a
// session.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

//go:embed roles.json
var defaultRoles []byte

// ErrRoleNotFound reports that a goal title has no catalog match. It is a
// user-visible "set or fix your goal" condition and is never silently
// substituted with another role.
var ErrRoleNotFound = errors.New("role not found in catalog")

// RoleDefinition is one externally defined role. The weight maps and the
// focus-by-bucket mapping are part of the published schema even though the
// current scoring does not consume them.
type RoleDefinition struct {
	ID             string   `json:"id" mapstructure:"id" validate:"required"`
	Title          string   `json:"title" mapstructure:"title" validate:"required"`
	RequiredSkills []string `json:"requiredSkills" mapstructure:"requiredSkills" validate:"required,min=1"`
	OptionalSkills []string `json:"optionalSkills" mapstructure:"optionalSkills"`
	Tags           []string `json:"tags" mapstructure:"tags"`

	Level                 string `json:"level,omitempty" mapstructure:"level"`
	MinExperienceYears    *int   `json:"minExperienceYears,omitempty" mapstructure:"minExperienceYears"`
	TargetExperienceYears *int   `json:"targetExperienceYears,omitempty" mapstructure:"targetExperienceYears"`

	RequiredSkillWeights map[string]int `json:"requiredSkillWeights,omitempty" mapstructure:"requiredSkillWeights"`
	OptionalSkillWeights map[string]int `json:"optionalSkillWeights,omitempty" mapstructure:"optionalSkillWeights"`

	SkillFocusByExperience map[string][]string `json:"skillFocusByExperience,omitempty" mapstructure:"skillFocusByExperience"`
}

// Catalog holds the ordered role list. Order is preserved from the source
// file because ranking ties break on catalog order.
type Catalog struct {
	Roles []RoleDefinition
}

// LoadFile reads and validates a JSON role catalog. A missing file falls back
// to the embedded default catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Load(defaultRoles)
		}
		return nil, fmt.Errorf("read role catalog: %w", err)
	}

	return Load(data)
}

// Load parses and validates a JSON role catalog payload.
func Load(data []byte) (*Catalog, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse role catalog: %w", err)
	}

	roles := make([]RoleDefinition, 0, len(records))
	if err := mapstructure.Decode(records, &roles); err != nil {
		return nil, fmt.Errorf("decode role records: %w", err)
	}

	validate := validator.New()
	for i, role := range roles {
		if err := validate.Struct(role); err != nil {
			return nil, fmt.Errorf("role record %d (%q): %w", i, role.Title, err)
		}
	}

	return &Catalog{Roles: roles}, nil
}

// FindByTitle looks a role up by exact case-insensitive title match, the only
// query downstream components need.
func (c *Catalog) FindByTitle(title string) (*RoleDefinition, error) {
	for i := range c.Roles {
		if strings.EqualFold(c.Roles[i].Title, title) {
			return &c.Roles[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, title)
}

// Titles returns the ordered role titles, used for goal selection prompts.
func (c *Catalog) Titles() []string {
	titles := make([]string, 0, len(c.Roles))
	for _, role := range c.Roles {
		titles = append(titles, role.Title)
	}
	return titles
}

// KnownSkillLabels returns every distinct skill label mentioned by the
// catalog, in catalog order. The CV extractor scans documents for these.
func (c *Catalog) KnownSkillLabels() []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)

	add := func(items []string) {
		for _, item := range items {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			labels = append(labels, item)
		}
	}

	for _, role := range c.Roles {
		add(role.RequiredSkills)
		add(role.OptionalSkills)
	}

	return labels
}
