package skill

import (
	"regexp"
	"sort"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^a-z0-9 +#.-]`)
)

// aliases maps cleaned skill labels to their canonical token. Many labels
// collapse to one token so that synonyms compare equal everywhere downstream.
// Extending the table is a data change, not a code change.
var aliases = map[string]string{
	// Android / Kotlin
	"compose":         "jetpack compose",
	"jetpackcompose":  "jetpack compose",
	"jetpack-compose": "jetpack compose",
	"android compose": "jetpack compose",

	"kotlin programming": "kotlin",
	"android kotlin":     "kotlin",

	// Architecture
	"mvvm architecture": "mvvm",
	"mvvm pattern":      "mvvm",

	// APIs
	"rest":            "rest api",
	"restful api":     "rest api",
	"api":             "rest api",
	"api integration": "rest api",

	// Firebase
	"firebase authentication": "firebase auth",
	"firebase auth":           "firebase auth",
	"firestore":               "firebase firestore",
	"firebase firestore":      "firebase firestore",
	"firebase database":       "firebase firestore",

	// Database
	"postgres":     "postgresql",
	"postgre":      "postgresql",
	"postgre sql":  "postgresql",
	"sql database": "sql",

	// Tools
	"github":          "git",
	"git hub":         "git",
	"version control": "git",

	// Testing
	"unit testing": "testing",
	"ui testing":   "testing",
}

// Normalizer canonicalizes free-text skill labels. It is stateless and safe
// for concurrent use.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize turns a free-text label into its canonical token: trim,
// lower-case, collapse whitespace, strip characters outside [a-z0-9 +#.-],
// then resolve the result through the alias table. Normalizing a canonical
// token returns the token itself.
func (n *Normalizer) Normalize(label string) string {
	cleaned := strings.ToLower(strings.TrimSpace(label))
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = disallowedRe.ReplaceAllString(cleaned, "")

	if canonical, ok := aliases[cleaned]; ok {
		return canonical
	}

	return cleaned
}

// NormalizeAll normalizes every label, drops empty results and deduplicates.
func (n *Normalizer) NormalizeAll(labels []string) map[string]struct{} {
	tokens := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		token := n.Normalize(label)
		if token == "" {
			continue
		}
		tokens[token] = struct{}{}
	}

	return tokens
}

// NormalizeAllSorted is NormalizeAll with a deterministic slice result, used
// wherever the token set is rendered or persisted.
func (n *Normalizer) NormalizeAllSorted(labels []string) []string {
	tokens := n.NormalizeAll(labels)

	sorted := make([]string, 0, len(tokens))
	for token := range tokens {
		sorted = append(sorted, token)
	}
	sort.Strings(sorted)

	return sorted
}

// SetFromSlice builds a token set from already-normalized tokens.
func SetFromSlice(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}
