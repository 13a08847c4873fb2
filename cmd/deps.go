package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"careercompass/internal/ai"
	"careercompass/internal/ai/gemini"
	"careercompass/internal/catalog"
	"careercompass/internal/logger"
	"careercompass/internal/secrets"
	"careercompass/internal/skill"
	"careercompass/internal/store"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// deps bundles everything a command needs. Commands that exit early call
// close themselves; otherwise defer it right after setup.
type deps struct {
	logger  *zap.Logger
	config  *Config
	catalog *catalog.Catalog
	store   *store.Store
}

func setup() (*deps, error) {
	appLogger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	roleCatalog, err := catalog.LoadFile(config.Catalog.RolesFile)
	if err != nil {
		return nil, fmt.Errorf("loading role catalog: %w", err)
	}

	st, err := store.New(config.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return &deps{
		logger:  appLogger,
		config:  config,
		catalog: roleCatalog,
		store:   st,
	}, nil
}

func (d *deps) close() {
	if err := d.store.Close(); err != nil {
		d.logger.Warn("closing store", zap.Error(err))
	}
}

// bestSkillSource prefers the normalized skill list over the raw one so that
// older profiles saved before normalization still work.
func bestSkillSource(record *store.ProfileRecord) []string {
	if len(record.SkillsNormalized) > 0 {
		return record.SkillsNormalized
	}
	return record.SkillsRaw
}

// userSkillSet re-normalizes the stored skill source; normalization is
// idempotent, so already-normalized tokens pass through unchanged.
func userSkillSet(record *store.ProfileRecord, normalizer *skill.Normalizer) map[string]struct{} {
	return normalizer.NormalizeAll(bestSkillSource(record))
}

func newAdvisor(ctx context.Context, cfg *AIConfig, appLogger *zap.Logger) (ai.Advisor, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("ai advice is not enabled in the configuration")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai advice is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithFields(appLogger, logger.AdviceFields("gemini", cfg.Gemini.Model)...)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}
