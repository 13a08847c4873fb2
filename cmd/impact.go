package cmd

import (
	"encoding/json"
	"fmt"

	"careercompass/internal/logger"
	"careercompass/internal/progress"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Show readiness history and improvement for the goal role",
	Run: func(_ *cobra.Command, _ []string) {
		runImpact()
	},
}

func init() {
	rootCmd.AddCommand(impactCmd)
}

type impactReport struct {
	GoalTitle       string              `json:"goal_title"`
	Baseline        *progress.Snapshot  `json:"baseline,omitempty"`
	Latest          *progress.Snapshot  `json:"latest,omitempty"`
	Improvement     *int                `json:"improvement,omitempty"`
	Snapshots       []progress.Snapshot `json:"snapshots"`
	CompletedSkills []string            `json:"completed_skills"`
}

func runImpact() {
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

	history, err := d.store.History(record.GoalRole)
	if err != nil {
		d.logger.Fatal("loading history", zap.Error(err))
	}

	completed, err := d.store.Completions(record.GoalRole)
	if err != nil {
		d.logger.Fatal("loading completions", zap.Error(err))
	}

	report := impactReport{
		GoalTitle:       record.GoalRole,
		Snapshots:       history.Snapshots,
		CompletedSkills: completed,
	}
	if baseline, ok := history.Baseline(); ok {
		report.Baseline = &baseline
	}
	if latest, ok := history.Latest(); ok {
		report.Latest = &latest
	}

	fields := []zap.Field{
		zap.String(logger.FieldGoal, record.GoalRole),
		zap.Int("snapshots", len(history.Snapshots)),
		zap.Int("completed_skills", len(completed)),
	}
	if improvement, ok := history.Improvement(); ok {
		report.Improvement = &improvement
		fields = append(fields, zap.Int("improvement", improvement))
	}

	d.logger.Info("impact report", fields...)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		d.logger.Fatal("rendering report", zap.Error(err))
	}
	fmt.Println(string(out))
}
