package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ovoitenko/pagelens/internal/keystore"
	"github.com/ovoitenko/pagelens/internal/model"
)

// loadConfig builds the effective configuration: defaults overridden by
// the config file and PAGELENS_* environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("api.key"); v != "" {
		cfg.API.Key = v
	}
	if v := viper.GetString("api.model"); v != "" {
		cfg.API.Model = v
	}
	if v := viper.GetString("api.base_url"); v != "" {
		cfg.API.BaseURL = v
	}
	if viper.IsSet("api.max_tokens") {
		cfg.API.MaxTokens = viper.GetInt("api.max_tokens")
	}
	if viper.IsSet("api.timeout") {
		cfg.API.Timeout = viper.GetDuration("api.timeout")
	}
	if viper.IsSet("factcheck.max_claims") {
		cfg.FactCheck.MaxClaims = viper.GetInt("factcheck.max_claims")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if viper.IsSet("batch.workers") {
		cfg.Batch.Workers = viper.GetInt("batch.workers")
	}

	if cfg.Cache.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".pagelens", "cache")
		}
	}

	cfg.Output.Verbose = verbose
	return cfg
}

// envAPIKey returns the environment-provided default credential.
func envAPIKey(cfg *model.Config) string {
	if cfg.API.Key != "" {
		return cfg.API.Key
	}
	if v := os.Getenv("PAGELENS_API_KEY"); v != "" {
		return v
	}
	return os.Getenv("OPENAI_API_KEY")
}

// newResolver builds the credential resolver: the user-saved key takes
// priority over the environment default.
func newResolver(cfg *model.Config) *keystore.Resolver {
	var store keystore.Store
	if path, err := keystore.DefaultPath(); err == nil {
		store = keystore.NewFileStore(path)
	}
	return keystore.NewResolver(store, envAPIKey(cfg))
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pagelens configuration",
	Long: `Manage pagelens configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (PAGELENS_*)
3. Config file (~/.pagelens/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		cfg.API.Key = "" // Never print credentials

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.pagelens/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := filepath.Join(home, ".pagelens")
		configPath := filepath.Join(configDir, "config.yaml")

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'pagelens config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		header := "# Pagelens configuration file\n" +
			"#\n" +
			"# Configuration hierarchy (highest to lowest priority):\n" +
			"#   1. CLI flags\n" +
			"#   2. Environment variables (PAGELENS_*)\n" +
			"#   3. This config file\n" +
			"#   4. Built-in defaults\n" +
			"#\n" +
			"# The API key is better kept out of this file:\n" +
			"#   pagelens key set sk-...\n" +
			"# or\n" +
			"#   export PAGELENS_API_KEY=sk-...\n\n"

		if err := os.WriteFile(configPath, append([]byte(header), yamlData...), 0644); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
