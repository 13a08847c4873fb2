package skill

import "testing"

func TestNormalizeCleans(t *testing.T) {
	n := NewNormalizer()

	cases := map[string]string{
		"  Kotlin  ":          "kotlin",
		"REST":                "rest api",
		"Jetpack   Compose":   "jetpack compose",
		"C#":                  "c#",
		"Node.js":             "node.js",
		"sql!!!":              "sql",
		"Firestore":           "firebase firestore",
		"GitHub":              "git",
		"version control":     "git",
		"Unit Testing":        "testing",
		"postgre sql":         "postgresql",
		"machine\tlearning":   "machine learning",
		"":                    "",
		"???":                 "",
		"firebase database":   "firebase firestore",
		"API Integration":     "rest api",
		"mvvm pattern":        "mvvm",
		"android kotlin":      "kotlin",
	}

	for input, want := range cases {
		if got := n.Normalize(input); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer()

	inputs := []string{"GitHub", "RESTful API", "Firestore", "c++", "  Data   Science ", "kotlin programming"}
	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Fatalf("normalization not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeAliasesCompareEqual(t *testing.T) {
	n := NewNormalizer()

	if n.Normalize("GitHub") != n.Normalize("git") {
		t.Fatalf("expected GitHub and git to normalize to the same token")
	}
	if n.Normalize("Firestore") != n.Normalize("firebase firestore") {
		t.Fatalf("expected Firestore and firebase firestore to normalize to the same token")
	}
}

func TestNormalizeAllDropsEmptyAndDeduplicates(t *testing.T) {
	n := NewNormalizer()

	tokens := n.NormalizeAll([]string{"git", "GitHub", "", "!!!", "version control"})
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d: %v", len(tokens), tokens)
	}
	if _, ok := tokens["git"]; !ok {
		t.Fatalf("expected git token, got %v", tokens)
	}
}

func TestNormalizeAllSortedIsDeterministic(t *testing.T) {
	n := NewNormalizer()

	got := n.NormalizeAllSorted([]string{"SQL", "Kotlin", "git", "api"})
	want := []string{"git", "kotlin", "rest api", "sql"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
