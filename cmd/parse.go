package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"careercompass/internal/cvparse"
	"careercompass/internal/skill"
	"careercompass/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseCmd = &cobra.Command{
	Use:   "parse <cv-file>",
	Short: "Extract a candidate profile from a CV document and store it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runParse(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().Int("experience", -1, "override the detected years of experience")
	parseCmd.Flags().StringSlice("interests", nil, "interest tags used for role recommendations")
}

func runParse(cmd *cobra.Command, path string) {
	d, err := setup()
	if err != nil {
		fatalSetup(err)
	}
	defer d.close()

	document, err := os.ReadFile(path)
	if err != nil {
		d.logger.Fatal("reading cv document", zap.String("path", path), zap.Error(err))
	}

	text, err := cvparse.ExtractText(document)
	if err != nil {
		if errors.Is(err, cvparse.ErrDocumentUnreadable) {
			d.logger.Fatal("cv document is not readable",
				zap.String("path", path),
				zap.Error(err),
				zap.String("hint", "supply a plain-text or html export of the cv"),
			)
		}
		d.logger.Fatal("extracting text", zap.Error(err))
	}

	normalizer := skill.NewNormalizer()
	profile := cvparse.ExtractProfile(text, d.catalog.KnownSkillLabels(), normalizer)

	record := &store.ProfileRecord{
		EducationLevel:   profile.EducationLevel,
		Major:            profile.Major,
		Phone:            profile.Phone,
		SkillsRaw:        profile.SkillsRaw,
		SkillsNormalized: profile.SkillsNormalized,
	}

	if profile.ExperienceYears != nil {
		record.ExperienceYears = *profile.ExperienceYears
	}
	if years, _ := cmd.Flags().GetInt("experience"); years >= 0 {
		record.ExperienceYears = years
	}
	if interests, _ := cmd.Flags().GetStringSlice("interests"); len(interests) > 0 {
		record.Interests = normalizer.NormalizeAllSorted(interests)
	} else if len(d.config.Recommend.Interests) > 0 {
		record.Interests = normalizer.NormalizeAllSorted(d.config.Recommend.Interests)
	}

	// Keep the current goal when re-parsing an updated cv.
	if existing, err := d.store.LoadProfile(); err == nil {
		record.GoalRole = existing.GoalRole
	}

	if err := d.store.SaveProfile(record); err != nil {
		d.logger.Fatal("saving profile", zap.Error(err))
	}

	d.logger.Info("profile extracted",
		zap.Int("skills", len(profile.SkillsNormalized)),
		zap.Int("experience_years", record.ExperienceYears),
		zap.String("education", profile.EducationLevel),
		zap.String("major", profile.Major),
	)

	pretty, _ := json.MarshalIndent(profile, "", "  ")
	fmt.Println(string(pretty))
}

func fatalSetup(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
