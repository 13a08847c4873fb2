package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"careercompass/internal/ai"
	"careercompass/internal/catalog"
	"careercompass/internal/engine"
	"careercompass/internal/logger"
	"careercompass/internal/progress"
	"careercompass/internal/skill"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build the readiness plan for the goal role and record a history snapshot",
	Run: func(cmd *cobra.Command, _ []string) {
		runPlan(cmd)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().BoolP("advice", "a", false, "generate AI learning advice for the missing skills")
	planCmd.Flags().Bool("no-snapshot", false, "do not append a history snapshot")
}

func runPlan(cmd *cobra.Command) {
	d, err := setup()
	if err != nil {
		fatalSetup(err)
	}
	defer d.close()

	record, err := d.store.LoadProfile()
	if err != nil {
		d.logger.Fatal("loading profile", zap.Error(err), zap.String("hint", "run 'careercompass parse <cv-file>' first"))
	}

	if record.GoalRole == "" {
		d.logger.Fatal("no goal role set", zap.String("hint", "run 'careercompass goal' to pick one"))
	}

	role, err := d.catalog.FindByTitle(record.GoalRole)
	if err != nil {
		if errors.Is(err, catalog.ErrRoleNotFound) {
			d.logger.Fatal("goal role not found in catalog",
				zap.String(logger.FieldGoal, record.GoalRole),
				zap.String("hint", "run 'careercompass goal' to fix your goal"),
			)
		}
		d.logger.Fatal("resolving goal role", zap.Error(err))
	}

	importance, err := catalog.LoadImportanceFile(d.config.Catalog.ImportanceFile)
	if err != nil {
		d.logger.Warn("loading importance map, scoring without model bonuses", zap.Error(err))
		importance = map[string]float64{}
	}

	userSkills := userSkillSet(record, skill.NewNormalizer())

	plan := engine.BuildPlan(role, userSkills, record.ExperienceYears, importance)

	history, err := d.store.History(role.Title)
	if err != nil {
		d.logger.Warn("loading history", zap.Error(err))
		history = &progress.History{}
	}

	fields := []zap.Field{
		zap.String(logger.FieldGoal, plan.GoalTitle),
		zap.Int("readiness", plan.ReadinessScore),
		zap.String("required", fmt.Sprintf("%d/%d", plan.RequiredMatched, plan.RequiredTotal)),
		zap.String("optional", fmt.Sprintf("%d/%d", plan.OptionalMatched, plan.OptionalTotal)),
	}
	if latest, ok := history.Latest(); ok {
		fields = append(fields, zap.Int("delta_vs_previous", plan.ReadinessScore-latest.Score))
	}
	d.logger.Info("readiness plan", fields...)

	if noSnapshot, _ := cmd.Flags().GetBool("no-snapshot"); !noSnapshot {
		missingTop := make([]string, 0, progress.DefaultTopN)
		for i, gap := range plan.MissingSkills {
			if i == progress.DefaultTopN {
				break
			}
			missingTop = append(missingTop, gap.Skill)
		}

		if _, err := d.store.AppendSnapshot(
			plan.GoalTitle, plan.ReadinessScore,
			plan.RequiredMatched, plan.RequiredTotal,
			plan.OptionalMatched, plan.OptionalTotal,
			missingTop,
		); err != nil {
			d.logger.Warn("appending history snapshot", zap.Error(err))
		}
	}

	pretty, _ := json.MarshalIndent(plan, "", "  ")
	fmt.Println(string(pretty))

	if withAdvice, _ := cmd.Flags().GetBool("advice"); withAdvice {
		printAdvice(d, plan, record.ExperienceYears)
	}
}

func printAdvice(d *deps, plan *engine.GoalPlanResult, experienceYears int) {
	ctx := context.Background()

	advisor, err := newAdvisor(ctx, d.config.AI, d.logger)
	if err != nil {
		d.logger.Warn("skipping ai advice", zap.Error(err))
		return
	}

	gaps := make([]ai.Gap, 0, len(plan.MissingSkills))
	for _, item := range plan.MissingSkills {
		gaps = append(gaps, ai.Gap{
			Skill:      item.Skill,
			IsRequired: item.IsRequired,
			Score:      item.Score,
			Reason:     item.Reason,
		})
	}

	advice, err := advisor.Advise(ctx, plan.GoalTitle, experienceYears, gaps)
	if err != nil {
		d.logger.Warn("generating ai advice", zap.Error(err))
		return
	}

	for _, entry := range advice {
		fmt.Printf("\n%s: %s\n", entry.Skill, entry.Why)
		for i, step := range entry.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}
}
