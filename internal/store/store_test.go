package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "careercompass.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.LoadProfile(); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}

	record := &ProfileRecord{
		GoalRole:         "Backend Developer",
		ExperienceYears:  3,
		EducationLevel:   "Bachelor",
		Major:            "Computer Science",
		Phone:            "+20 100 123 4567",
		SkillsRaw:        []string{"github", "sql"},
		SkillsNormalized: []string{"git", "sql"},
		Interests:        []string{"backend"},
	}
	if err := s.SaveProfile(record); err != nil {
		t.Fatalf("saving profile: %v", err)
	}

	loaded, err := s.LoadProfile()
	if err != nil {
		t.Fatalf("loading profile: %v", err)
	}
	if loaded.GoalRole != "Backend Developer" || loaded.ExperienceYears != 3 {
		t.Fatalf("unexpected profile: %+v", loaded)
	}
	if len(loaded.SkillsNormalized) != 2 || loaded.SkillsNormalized[0] != "git" {
		t.Fatalf("normalized skills lost in round trip: %v", loaded.SkillsNormalized)
	}

	// Saving again replaces, not duplicates.
	record.ExperienceYears = 4
	if err := s.SaveProfile(record); err != nil {
		t.Fatalf("updating profile: %v", err)
	}
	loaded, err = s.LoadProfile()
	if err != nil {
		t.Fatalf("reloading profile: %v", err)
	}
	if loaded.ExperienceYears != 4 {
		t.Fatalf("expected updated experience, got %d", loaded.ExperienceYears)
	}
}

func TestSetGoalWithoutProfile(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetGoal("Android Developer"); err != nil {
		t.Fatalf("setting goal: %v", err)
	}

	loaded, err := s.LoadProfile()
	if err != nil {
		t.Fatalf("loading profile: %v", err)
	}
	if loaded.GoalRole != "Android Developer" {
		t.Fatalf("unexpected goal: %q", loaded.GoalRole)
	}
}

func TestSnapshotHistoryAppendOnly(t *testing.T) {
	s := newTestStore(t)

	for _, score := range []int{35, 55, 70} {
		if _, err := s.AppendSnapshot("Backend Developer", score, 1, 2, 0, 1, []string{"sql"}); err != nil {
			t.Fatalf("appending snapshot: %v", err)
		}
	}
	if _, err := s.AppendSnapshot("Android Developer", 10, 0, 4, 0, 2, nil); err != nil {
		t.Fatalf("appending snapshot: %v", err)
	}

	history, err := s.History("Backend Developer")
	if err != nil {
		t.Fatalf("loading history: %v", err)
	}
	if len(history.Snapshots) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(history.Snapshots))
	}

	baseline, _ := history.Baseline()
	latest, _ := history.Latest()
	improvement, ok := history.Improvement()
	if baseline.Score != 35 || latest.Score != 70 || !ok || improvement != 35 {
		t.Fatalf("unexpected history: baseline %d latest %d improvement %d", baseline.Score, latest.Score, improvement)
	}
}

func TestCompletionsToggle(t *testing.T) {
	s := newTestStore(t)

	goal := "Backend Developer"
	if err := s.SetCompletion(goal, "sql", true); err != nil {
		t.Fatalf("adding completion: %v", err)
	}
	if err := s.SetCompletion(goal, "docker", true); err != nil {
		t.Fatalf("adding completion: %v", err)
	}
	// Adding twice stays a set.
	if err := s.SetCompletion(goal, "sql", true); err != nil {
		t.Fatalf("re-adding completion: %v", err)
	}

	skills, err := s.Completions(goal)
	if err != nil {
		t.Fatalf("loading completions: %v", err)
	}
	if len(skills) != 2 || skills[0] != "docker" || skills[1] != "sql" {
		t.Fatalf("unexpected completions: %v", skills)
	}

	if err := s.SetCompletion(goal, "sql", false); err != nil {
		t.Fatalf("removing completion: %v", err)
	}
	skills, err = s.Completions(goal)
	if err != nil {
		t.Fatalf("reloading completions: %v", err)
	}
	if len(skills) != 1 || skills[0] != "docker" {
		t.Fatalf("unexpected completions after removal: %v", skills)
	}

	other, err := s.Completions("Android Developer")
	if err != nil {
		t.Fatalf("loading other goal completions: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("completions leaked across goals: %v", other)
	}
}
