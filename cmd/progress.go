package cmd

import (
	"errors"
	"fmt"

	"careercompass/internal/catalog"
	"careercompass/internal/content"
	"careercompass/internal/logger"
	"careercompass/internal/progress"
	"careercompass/internal/skill"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const promptBack = "back"

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the action plan for the goal role and toggle completed skills",
	Run: func(cmd *cobra.Command, _ []string) {
		runProgress(cmd)
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)

	progressCmd.Flags().BoolP("interactive", "i", false, "toggle completions interactively")
	progressCmd.Flags().StringSlice("done", nil, "skills to mark completed")
	progressCmd.Flags().StringSlice("undone", nil, "skills to mark not completed")
	progressCmd.Flags().IntP("top", "t", 0, "number of gap items to track (default 10)")
}

func runProgress(cmd *cobra.Command) {
	d, err := setup()
	if err != nil {
		fatalSetup(err)
	}
	defer d.close()

	session, role := openSession(cmd, d)

	library, err := content.LoadFile(d.config.Catalog.LearningContentFile)
	if err != nil {
		d.logger.Warn("loading learning content, falling back to generic entries", zap.Error(err))
		library = &content.Library{}
	}

	if done, _ := cmd.Flags().GetStringSlice("done"); len(done) > 0 {
		applyToggles(d, session, role.Title, done, true)
	}
	if undone, _ := cmd.Flags().GetStringSlice("undone"); len(undone) > 0 {
		applyToggles(d, session, role.Title, undone, false)
	}

	renderPlan(d, session, library)

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive {
		return
	}

	for {
		items := session.Items()
		labels := make([]string, 0, len(items)+1)
		for _, item := range items {
			mark := " "
			if item.Done {
				mark = "x"
			}
			labels = append(labels, fmt.Sprintf("[%s] %s (priority %d)", mark, item.Skill, item.Score))
		}

		togglePrompt := promptui.Select{
			Label: "Choose a skill to toggle and press ENTER",
			Items: append(labels, promptBack),
		}

		idx, selected, err := togglePrompt.Run()
		if err != nil {
			d.logger.Fatal("exiting", zap.Error(err))
		}
		if selected == promptBack {
			return
		}

		item := items[idx]
		applyToggles(d, session, role.Title, []string{item.Skill}, !item.Done)
		renderPlan(d, session, library)
	}
}

// openSession loads the stored state and builds the per-goal tracker session.
func openSession(cmd *cobra.Command, d *deps) (*progress.Session, *catalog.RoleDefinition) {
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

	completed, err := d.store.Completions(role.Title)
	if err != nil {
		d.logger.Fatal("loading completions", zap.Error(err))
	}

	topN := d.config.Plan.TopN
	if flagTop, _ := cmd.Flags().GetInt("top"); flagTop > 0 {
		topN = flagTop
	}

	session := progress.NewSession(
		role,
		userSkillSet(record, skill.NewNormalizer()),
		record.ExperienceYears,
		importance,
		completed,
		topN,
	)

	return session, role
}

func applyToggles(d *deps, session *progress.Session, goalTitle string, skills []string, done bool) {
	normalizer := skill.NewNormalizer()
	for _, label := range skills {
		token := normalizer.Normalize(label)
		if token == "" {
			continue
		}

		if err := d.store.SetCompletion(goalTitle, token, done); err != nil {
			d.logger.Fatal("saving completion", zap.Error(err))
		}
		session.SetDone(token, done)

		d.logger.Info("completion toggled",
			zap.String("skill", token),
			zap.Bool("done", done),
			zap.Int("readiness", session.Readiness()),
		)
	}
}

func renderPlan(d *deps, session *progress.Session, library *content.Library) {
	items := session.Items()
	plan := session.Plan()

	var completedCount int
	for _, item := range items {
		if item.Done {
			completedCount++
		}
	}

	d.logger.Info("action plan",
		zap.String(logger.FieldGoal, plan.GoalTitle),
		zap.Int("readiness", session.Readiness()),
		zap.String("completed", fmt.Sprintf("%d/%d", completedCount, len(items))),
	)

	for _, item := range items {
		mark := " "
		if item.Done {
			mark = "x"
		}
		kind := "optional"
		if item.IsRequired {
			kind = "required"
		}

		entry := library.Lookup(item.Skill)

		fmt.Printf("[%s] %s (%s, priority %d)\n", mark, item.Skill, kind, item.Score)
		fmt.Printf("    %s\n", item.Reason)
		if entry.Why != "" {
			fmt.Printf("    %s\n", entry.Why)
		}
		for i, step := range entry.Steps {
			fmt.Printf("    %d. %s\n", i+1, step)
		}
	}

	if len(items) == 0 {
		fmt.Println("No missing skills for this goal. You are ready to apply.")
	}
}
