package catalog

import (
	"errors"
	"testing"
)

const rolesJSON = `[
  {
    "id": "android-dev",
    "title": "Android Developer",
    "requiredSkills": ["Kotlin", "Jetpack Compose", "REST API"],
    "optionalSkills": ["Firebase Firestore", "Testing"],
    "tags": ["mobile", "android"],
    "level": "junior",
    "minExperienceYears": 0,
    "skillFocusByExperience": {"0-1": ["kotlin", "git"]}
  },
  {
    "id": "backend-dev",
    "title": "Backend Developer",
    "requiredSkills": ["SQL", "REST API"],
    "optionalSkills": ["Docker"],
    "tags": ["backend"]
  }
]`

func TestLoad(t *testing.T) {
	c, err := Load([]byte(rolesJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c.Roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(c.Roles))
	}
	if c.Roles[0].ID != "android-dev" {
		t.Fatalf("catalog order not preserved: %v", c.Titles())
	}
	if len(c.Roles[0].SkillFocusByExperience["0-1"]) != 2 {
		t.Fatalf("skill focus mapping not decoded: %v", c.Roles[0].SkillFocusByExperience)
	}
}

func TestLoadRejectsInvalidRecords(t *testing.T) {
	cases := []string{
		`not json`,
		`[{"id": "x", "title": "No Required Skills", "requiredSkills": []}]`,
		`[{"id": "x", "requiredSkills": ["go"]}]`,
	}

	for _, payload := range cases {
		if _, err := Load([]byte(payload)); err == nil {
			t.Fatalf("expected error for payload %s", payload)
		}
	}
}

func TestFindByTitleCaseInsensitive(t *testing.T) {
	c, err := Load([]byte(rolesJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	role, err := c.FindByTitle("bACKEND dEVELOPER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role.ID != "backend-dev" {
		t.Fatalf("wrong role: %s", role.ID)
	}

	if _, err := c.FindByTitle("Astronaut"); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestKnownSkillLabelsDeduplicates(t *testing.T) {
	c, err := Load([]byte(rolesJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	labels := c.KnownSkillLabels()

	seen := make(map[string]int)
	for _, label := range labels {
		seen[label]++
	}
	if seen["REST API"] != 1 {
		t.Fatalf("expected REST API exactly once, got %d (%v)", seen["REST API"], labels)
	}
	if len(labels) != 7 {
		t.Fatalf("expected 7 distinct labels, got %d: %v", len(labels), labels)
	}
}

func TestLoadFileMissingFallsBackToDefaults(t *testing.T) {
	c, err := LoadFile("/nonexistent/roles.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c.Roles) == 0 {
		t.Fatal("expected embedded default roles")
	}
	if _, err := c.FindByTitle("Android Developer"); err != nil {
		t.Fatalf("default catalog missing android role: %v", err)
	}
}

func TestParseImportance(t *testing.T) {
	payload := `{"version": 1, "skills": [
		{"skill": " Kotlin ", "importance": 0.9},
		{"skill": "sql", "importance": 0.6},
		{"skill": "", "importance": 0.1}
	]}`

	importance, err := ParseImportance([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(importance) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(importance))
	}
	if importance["kotlin"] != 0.9 {
		t.Fatalf("expected trimmed lower-cased key, got %v", importance)
	}
}

func TestLoadImportanceFileMissingIsEmpty(t *testing.T) {
	importance, err := LoadImportanceFile("/nonexistent/skill_priority_map.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(importance) != 0 {
		t.Fatalf("expected empty map, got %v", importance)
	}
}
