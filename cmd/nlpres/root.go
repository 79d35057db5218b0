package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/edgard/nlpres/internal/config"
	"github.com/edgard/nlpres/internal/logger"
	"github.com/edgard/nlpres/internal/resource"
)

var (
	configPath string

	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nlpres",
	Short: "Lexical resource host",
	Long: `nlpres loads WordNet, word clusters, word embeddings and entity
dictionaries, keeps them fresh, and answers lookups against them.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default ./config.yaml)")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	// Lookup commands keep stdout for results.
	log = slog.New(logger.NewHandler(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.JSON))
	return nil
}

// openResource initializes res from its config section, ignoring the
// enabled flag. The caller must Close it.
func openResource(ctx context.Context, res resource.Resource) error {
	params, ok := cfg.Params(res.Name())
	if !ok {
		return fmt.Errorf("no configuration for resource %q", res.Name())
	}
	return res.Initialize(ctx, params)
}
