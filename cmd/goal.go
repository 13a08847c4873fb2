package cmd

import (
	"errors"
	"strings"

	"careercompass/internal/catalog"
	"careercompass/internal/logger"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var goalCmd = &cobra.Command{
	Use:   "goal [role title]",
	Short: "Set the goal role, either by title or interactively",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runGoal(args)
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
}

func runGoal(args []string) {
	d, err := setup()
	if err != nil {
		fatalSetup(err)
	}
	defer d.close()

	var title string
	if len(args) == 1 {
		title = strings.TrimSpace(args[0])
	}

	if title == "" {
		goalPrompt := promptui.Select{
			Label: "Choose a goal role and press ENTER",
			Items: d.catalog.Titles(),
		}

		_, title, err = goalPrompt.Run()
		if err != nil {
			d.logger.Fatal("exiting", zap.Error(err))
		}
	}

	role, err := d.catalog.FindByTitle(title)
	if err != nil {
		if errors.Is(err, catalog.ErrRoleNotFound) {
			d.logger.Fatal("goal role not found in catalog",
				zap.String(logger.FieldGoal, title),
				zap.Strings("available_roles", d.catalog.Titles()),
			)
		}
		d.logger.Fatal("resolving goal role", zap.Error(err))
	}

	if err := d.store.SetGoal(role.Title); err != nil {
		d.logger.Fatal("saving goal", zap.Error(err))
	}

	d.logger.Info("goal set", zap.String(logger.FieldGoal, role.Title))
}
