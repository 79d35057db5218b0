package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edgard/nlpres/internal/database"
)

var wordnetCmd = &cobra.Command{
	Use:   "wordnet",
	Short: "Manage the WordNet database",
}

var wordnetImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a tab separated sense listing",
	Long: `Creates or updates the configured WordNet database from a file with
rows of "offset pos lexname lemma sense_number tag_count [gloss]".`,
	Args: cobra.ExactArgs(1),
	RunE: runWordnetImport,
}

var wordnetStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print synset and sense counts",
	Args:  cobra.NoArgs,
	RunE:  runWordnetStats,
}

func init() {
	wordnetCmd.AddCommand(wordnetImportCmd)
	wordnetCmd.AddCommand(wordnetStatsCmd)
	rootCmd.AddCommand(wordnetCmd)
}

func runWordnetImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	db, err := database.Open(cfg.Resources.WordNet.Path)
	if err != nil {
		return err
	}
	defer database.Close(db)

	result, err := database.ImportTSV(cmd.Context(), database.NewStore(db, log), f)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d synsets and %d senses into %s\n",
		result.Synsets, result.Senses, cfg.Resources.WordNet.Path)
	return nil
}

func runWordnetStats(cmd *cobra.Command, _ []string) error {
	db, err := database.Open(cfg.Resources.WordNet.Path)
	if err != nil {
		return err
	}
	defer database.Close(db)

	stats, err := database.NewStore(db, log).Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "synsets\t%d\nsenses\t%d\n", stats.Synsets, stats.Senses)
	return nil
}
