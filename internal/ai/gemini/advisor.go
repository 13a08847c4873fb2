package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"careercompass/internal/ai"
	"careercompass/internal/logger"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Advisor asks Gemini to turn a computed gap plan into learning guidance.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewAdvisor wires a content generator into the advice surface.
func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Advise generates one advice entry per gap. The response is parsed
// leniently; entries the model skipped simply stay absent rather than
// failing the whole call.
func (a *Advisor) Advise(ctx context.Context, goalTitle string, experienceYears int, gaps []ai.Gap) ([]*ai.Advice, error) {
	if strings.TrimSpace(goalTitle) == "" {
		return nil, fmt.Errorf("goal title is required")
	}
	if len(gaps) == 0 {
		return nil, nil
	}

	gapsJSON, err := json.MarshalIndent(gaps, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal gap payload: %w", err)
	}

	prompt := buildPrompt(goalTitle, experienceYears, string(gapsJSON))

	a.logger.Debug("gemini advice request",
		zap.String(logger.FieldGoal, goalTitle),
		zap.Int("gap_count", len(gaps)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini advice response",
		zap.String(logger.FieldGoal, goalTitle),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(goalTitle string, experienceYears int, gapsJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Goal: {{GOAL_TITLE}} ({{EXPERIENCE_YEARS}} years of experience)\n\nMissing skills:\n{{GAPS_JSON}}\n\nJSON Response:"
	}

	prompt := strings.ReplaceAll(template, "{{GOAL_TITLE}}", goalTitle)
	prompt = strings.ReplaceAll(prompt, "{{EXPERIENCE_YEARS}}", fmt.Sprintf("%d", experienceYears))
	prompt = strings.ReplaceAll(prompt, "{{GAPS_JSON}}", gapsJSON)
	return prompt
}

func parseResponse(raw string) ([]*ai.Advice, error) {
	cleaned := extractJSON(raw)

	var entries []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	advice := make([]*ai.Advice, 0, len(entries))
	for _, entry := range entries {
		skill := coerceString(entry["skill"])
		if skill == "" {
			continue
		}

		advice = append(advice, &ai.Advice{
			Skill: strings.ToLower(skill),
			Why:   coerceString(entry["why"]),
			Steps: coerceStrings(entry["steps"]),
			Raw:   cleaned,
		})
	}

	return advice, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if s := coerceString(v); s != "" {
			return []string{s}
		}
		return nil
	}

	steps := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}
