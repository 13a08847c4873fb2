package engine

import (
	"math"
	"testing"

	"careercompass/internal/catalog"
	"careercompass/internal/skill"
)

func testRoles() []catalog.RoleDefinition {
	return []catalog.RoleDefinition{
		{
			ID:             "android-dev",
			Title:          "Android Developer",
			RequiredSkills: []string{"Kotlin", "Jetpack Compose", "REST API", "Git"},
			OptionalSkills: []string{"Firebase Firestore", "Testing"},
			Tags:           []string{"mobile", "android"},
		},
		{
			ID:             "backend-dev",
			Title:          "Backend Developer",
			RequiredSkills: []string{"SQL", "REST API"},
			OptionalSkills: []string{"Docker"},
			Tags:           []string{"backend"},
		},
		{
			ID:             "qa-engineer",
			Title:          "QA Engineer",
			RequiredSkills: []string{"Testing"},
			Tags:           []string{"quality"},
		},
	}
}

func TestRankOrdersByScore(t *testing.T) {
	userSkills := skill.SetFromSlice([]string{"sql", "rest api", "docker"})

	recs := Rank(userSkills, nil, testRoles(), 10)

	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if recs[0].RoleID != "backend-dev" {
		t.Fatalf("expected backend-dev first, got %s", recs[0].RoleID)
	}
	if recs[0].Score != 1.0 {
		t.Fatalf("expected full match score 1.0, got %v", recs[0].Score)
	}
	if len(recs[0].MissingRequired) != 0 || len(recs[0].MissingOptional) != 0 {
		t.Fatalf("expected no missing skills for a full match")
	}
}

func TestRankScoreWeights(t *testing.T) {
	userSkills := skill.SetFromSlice([]string{"kotlin", "jetpack compose"})

	recs := Rank(userSkills, nil, testRoles()[:1], 10)

	// 0.75 * 2/4 + 0.25 * 0/2
	want := 0.375
	if math.Abs(recs[0].Score-want) > 1e-9 {
		t.Fatalf("expected score %v, got %v", want, recs[0].Score)
	}
	if len(recs[0].MissingRequired) != 2 {
		t.Fatalf("expected 2 missing required, got %v", recs[0].MissingRequired)
	}
}

func TestRankInterestTagBonus(t *testing.T) {
	userSkills := skill.SetFromSlice([]string{"kotlin", "jetpack compose"})
	interests := skill.SetFromSlice([]string{"mobile", "android"})

	plain := Rank(userSkills, nil, testRoles()[:1], 10)
	boosted := Rank(userSkills, interests, testRoles()[:1], 10)

	want := plain[0].Score + 2*0.05
	if math.Abs(boosted[0].Score-want) > 1e-9 {
		t.Fatalf("expected %v with tag bonus, got %v", want, boosted[0].Score)
	}
}

func TestRankScoreClampedToOne(t *testing.T) {
	userSkills := skill.SetFromSlice([]string{"sql", "rest api", "docker"})
	interests := skill.SetFromSlice([]string{"backend"})

	recs := Rank(userSkills, interests, testRoles(), 10)

	for _, rec := range recs {
		if rec.Score < 0 || rec.Score > 1 {
			t.Fatalf("score out of bounds for %s: %v", rec.RoleID, rec.Score)
		}
	}
}

func TestRankEmptyRequiredCountsAsSatisfied(t *testing.T) {
	roles := []catalog.RoleDefinition{{
		ID:             "generalist",
		Title:          "Generalist",
		OptionalSkills: []string{"docker"},
	}}

	recs := Rank(skill.SetFromSlice(nil), nil, roles, 10)

	// 0.75 * 1.0 + 0.25 * 0
	if math.Abs(recs[0].Score-0.75) > 1e-9 {
		t.Fatalf("expected 0.75 for empty required list, got %v", recs[0].Score)
	}
}

func TestRankTieBreakKeepsCatalogOrder(t *testing.T) {
	roles := []catalog.RoleDefinition{
		{ID: "first", Title: "First", RequiredSkills: []string{"go"}},
		{ID: "second", Title: "Second", RequiredSkills: []string{"go"}},
		{ID: "third", Title: "Third", RequiredSkills: []string{"go"}},
	}

	recs := Rank(skill.SetFromSlice([]string{"go"}), nil, roles, 10)

	for i, want := range []string{"first", "second", "third"} {
		if recs[i].RoleID != want {
			t.Fatalf("tie-break broke catalog order: %v", recs)
		}
	}
}

func TestRankTruncatesToTopK(t *testing.T) {
	recs := Rank(skill.SetFromSlice([]string{"testing"}), nil, testRoles(), 1)

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].RoleID != "qa-engineer" {
		t.Fatalf("expected best role to survive truncation, got %s", recs[0].RoleID)
	}
}
