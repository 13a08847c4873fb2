// Package cvparse turns raw CV documents into structured candidate profiles.
//
// Detection is deliberately heuristic: substring and regex matching against a
// lower-cased copy of the document text. Every field degrades to absent on
// sparse or malformed input instead of failing the whole profile.
package cvparse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"careercompass/internal/skill"
)

// Education levels recognized by the extractor, in detection priority order.
const (
	EducationPhD        = "PhD"
	EducationMaster     = "Master"
	EducationBachelor   = "Bachelor"
	EducationDiploma    = "Diploma"
	EducationHighSchool = "High School"
)

// Profile is the structured result of one extraction. Optional fields are
// empty/nil when the document gives no signal. A Profile is never merged with
// stored data here; reconciliation is up to the caller.
type Profile struct {
	EducationLevel   string   `json:"education_level,omitempty"`
	Major            string   `json:"major,omitempty"`
	ExperienceYears  *int     `json:"experience_years,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	SkillsRaw        []string `json:"skills_raw"`
	SkillsNormalized []string `json:"skills_normalized"`
}

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	phoneRe           = regexp.MustCompile(`(\+?\d[\d \-()]{7,}\d)`)
	experienceRe      = regexp.MustCompile(`(\d{1,2})\s*\+?\s*(years|year)\s*(of\s*)?(experience|exp)?`)
)

// ExtractProfile builds a Profile from already-extracted plain text. Skill
// detection tests each known label for containment in the text, so partial
// word matches are possible ("java" inside "javascript"); that behavior is
// load-bearing for existing fixtures and kept as is.
func ExtractProfile(rawText string, knownSkillLabels []string, normalizer *skill.Normalizer) *Profile {
	text := strings.ReplaceAll(rawText, "\r", "\n")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = strings.ToLower(text)

	detected := detectSkills(text, knownSkillLabels)

	return &Profile{
		EducationLevel:   detectEducation(text),
		Major:            detectMajor(text),
		ExperienceYears:  extractExperienceYears(text),
		Phone:            extractPhone(text),
		SkillsRaw:        detected,
		SkillsNormalized: normalizer.NormalizeAllSorted(detected),
	}
}

func extractPhone(text string) string {
	return strings.TrimSpace(phoneRe.FindString(text))
}

// extractExperienceYears picks the first "N years [of experience]" style
// mention. No match means absent, never zero.
func extractExperienceYears(text string) *int {
	m := experienceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	years, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}

	return &years
}

// detectEducation checks levels from highest to lowest so that a CV
// mentioning both a PhD and the bachelor it built on reports PhD.
func detectEducation(text string) string {
	switch {
	case containsAny(text, "phd", "doctorate"):
		return EducationPhD
	case containsAny(text, "master", "msc", "m.sc"):
		return EducationMaster
	case containsAny(text, "bachelor", "bsc", "b.sc"):
		return EducationBachelor
	case strings.Contains(text, "diploma"):
		return EducationDiploma
	case containsAny(text, "high school", "secondary school"):
		return EducationHighSchool
	default:
		return ""
	}
}

func detectMajor(text string) string {
	switch {
	case containsAny(text, "computer science", "computing"):
		return "Computer Science"
	case strings.Contains(text, "software engineering"):
		return "Software Engineering"
	case containsAny(text, "information technology", "it "):
		return "Information Technology"
	case containsAny(text, "data science", "data analytics"):
		return "Data Science"
	case containsAny(text, "cybersecurity", "information security"):
		return "Cybersecurity"
	case containsAny(text, "business", "management"):
		return "Business"
	default:
		return ""
	}
}

func detectSkills(text string, knownSkillLabels []string) []string {
	found := make(map[string]struct{})
	for _, label := range knownSkillLabels {
		needle := strings.ToLower(strings.TrimSpace(label))
		if needle == "" {
			continue
		}
		if strings.Contains(text, needle) {
			found[needle] = struct{}{}
		}
	}

	detected := make([]string, 0, len(found))
	for needle := range found {
		detected = append(detected, needle)
	}
	sort.Strings(detected)

	return detected
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
