package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgard/nlpres/internal/database"
	"github.com/edgard/nlpres/internal/supersense"
	"github.com/edgard/nlpres/internal/wordnet"
)

var supersensePos string

var supersenseCmd = &cobra.Command{
	Use:   "supersense WORD...",
	Short: "Print the supersense of each word",
	Long: `Looks up the most frequent WordNet sense of each word and prints
"word<TAB>supersense". Words without a sense print "-".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSupersense,
}

func init() {
	supersenseCmd.Flags().StringVarP(&supersensePos, "pos", "p", "", "WordNet part of speech (n, v, a, r); empty matches all")
	rootCmd.AddCommand(supersenseCmd)
}

func runSupersense(cmd *cobra.Command, args []string) error {
	if supersensePos != "" && !database.ValidPos(supersensePos) {
		return fmt.Errorf("invalid part of speech %q", supersensePos)
	}

	wn := wordnet.New(log)
	if err := openResource(cmd.Context(), wn); err != nil {
		return err
	}
	defer wn.Close()

	tagger := supersense.NewTagger(wn)
	for _, word := range args {
		sense, err := tagger.Lookup(cmd.Context(), word, supersensePos)
		switch {
		case errors.Is(err, supersense.ErrNoSense):
			sense = "-"
		case err != nil:
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", word, sense)
	}
	return nil
}
