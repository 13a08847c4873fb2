package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "careercompass"
)

type Config struct {
	Catalog   *CatalogConfig   `mapstructure:"catalog"`
	Store     *StoreConfig     `mapstructure:"store"`
	Recommend *RecommendConfig `mapstructure:"recommend"`
	Plan      *PlanConfig      `mapstructure:"plan"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type CatalogConfig struct {
	RolesFile           string `mapstructure:"roles-file"`
	ImportanceFile      string `mapstructure:"importance-file"`
	LearningContentFile string `mapstructure:"learning-content-file"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type RecommendConfig struct {
	TopK      int      `mapstructure:"top-k"`
	Interests []string `mapstructure:"interests"`
}

type PlanConfig struct {
	TopN int `mapstructure:"top-n"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "careercompass matches your skills against a role catalog and tracks your readiness for a goal role",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is "+app+".yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// Commands run fine on defaults when there is no config file; a config
	// file that exists but does not parse is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	applyDefaults(config)

	return config, nil
}

func applyDefaults(config *Config) {
	if config.Catalog == nil {
		config.Catalog = &CatalogConfig{}
	}
	if config.Catalog.RolesFile == "" {
		config.Catalog.RolesFile = "roles.json"
	}
	if config.Catalog.ImportanceFile == "" {
		config.Catalog.ImportanceFile = "skill_priority_map.json"
	}
	if config.Catalog.LearningContentFile == "" {
		config.Catalog.LearningContentFile = "learning_content.json"
	}

	if config.Store == nil {
		config.Store = &StoreConfig{}
	}
	if config.Store.Path == "" {
		config.Store.Path = app + ".db"
	}

	if config.Recommend == nil {
		config.Recommend = &RecommendConfig{}
	}
	if config.Recommend.TopK <= 0 {
		config.Recommend.TopK = 10
	}

	if config.Plan == nil {
		config.Plan = &PlanConfig{}
	}
}
