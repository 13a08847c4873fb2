package cmd

import (
	"encoding/json"
	"fmt"

	"careercompass/internal/engine"
	"careercompass/internal/logger"
	"careercompass/internal/skill"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank catalog roles by fit against the stored profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().IntP("top", "t", 0, "number of roles to show (default from config)")
	recommendCmd.Flags().BoolP("set-goal", "g", false, "pick one of the recommended roles as the goal")
}

func runRecommend(cmd *cobra.Command) {
	d, err := setup()
	if err != nil {
		fatalSetup(err)
	}
	defer d.close()

	record, err := d.store.LoadProfile()
	if err != nil {
		d.logger.Fatal("loading profile", zap.Error(err), zap.String("hint", "run 'careercompass parse <cv-file>' first"))
	}

	normalizer := skill.NewNormalizer()
	userSkills := userSkillSet(record, normalizer)
	interests := skill.SetFromSlice(record.Interests)

	topK := d.config.Recommend.TopK
	if flagTop, _ := cmd.Flags().GetInt("top"); flagTop > 0 {
		topK = flagTop
	}

	recommendations := engine.Rank(userSkills, interests, d.catalog.Roles, topK)

	d.logger.Info("ranked roles",
		zap.Int("catalog_size", len(d.catalog.Roles)),
		zap.Int("shown", len(recommendations)),
		zap.Int("user_skills", len(userSkills)),
	)

	pretty, _ := json.MarshalIndent(recommendations, "", "  ")
	fmt.Println(string(pretty))

	if setGoal, _ := cmd.Flags().GetBool("set-goal"); !setGoal {
		return
	}

	titles := make([]string, 0, len(recommendations))
	for _, rec := range recommendations {
		titles = append(titles, rec.Title)
	}

	goalPrompt := promptui.Select{
		Label: "Choose a goal role and press ENTER",
		Items: titles,
	}

	_, selected, err := goalPrompt.Run()
	if err != nil {
		d.logger.Fatal("exiting", zap.Error(err))
	}

	if err := d.store.SetGoal(selected); err != nil {
		d.logger.Fatal("saving goal", zap.Error(err))
	}

	d.logger.Info("goal set", zap.String(logger.FieldGoal, selected))
}
