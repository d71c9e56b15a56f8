// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-radar CLI. It aggregates
// paper metadata from arXiv, OpenAlex, Semantic Scholar, IEEE Xplore and
// Springer Nature, ranks it by a trending score, and finds related papers
// within the last result set.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-radar/internal/observability"
	"github.com/pdiddy/paper-radar/internal/secrets"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Resolved at startup by PersistentPreRunE.
var (
	cfg    types.Config
	logger zerolog.Logger
)

// rootCmd is the base command for the paper-radar CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-radar",
	Short: "Aggregate, rank and relate academic papers across providers",
	Long: `paper-radar queries several academic metadata providers for a topic,
normalizes their records into one result set, and ranks it by a
recency-weighted citation score. Related papers are found by TF-IDF
similarity within the same result set.

Credentials are read from .secrets/ (ieee-api-key, springer-api-key,
semantic-scholar-api-key, openalex-email, groq-api-key) unless set in the
config file or PAPER_RADAR_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		logger = observability.NewLogger(c.Logging)

		dir, _ := cmd.Flags().GetString("secrets")
		s, err := secrets.Load(dir, logger)
		if err != nil {
			return err
		}
		secrets.Apply(&c, s)
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		cfg = c
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-radar.yaml or ~/.config/paper-radar/paper-radar.yaml)")
	rootCmd.PersistentFlags().String("secrets", ".secrets/", "directory of credential files")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-radar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-radar"))
		}
	}

	viper.SetEnvPrefix("PAPER_RADAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
