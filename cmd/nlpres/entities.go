package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgard/nlpres/internal/entities"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Query the named-entity dictionary",
}

var entitiesMatchCmd = &cobra.Command{
	Use:   "match TEXT...",
	Short: "Print dictionary matches in text",
	Long: `Tokenizes the text on whitespace and prints the longest
non-overlapping dictionary matches as "start<TAB>end<TAB>phrase<TAB>types".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEntitiesMatch,
}

func init() {
	entitiesCmd.AddCommand(entitiesMatchCmd)
	rootCmd.AddCommand(entitiesCmd)
}

func runEntitiesMatch(cmd *cobra.Command, args []string) error {
	dict := entities.New(log)
	if err := openResource(cmd.Context(), dict); err != nil {
		return err
	}
	defer dict.Close()

	tokens, spans := dict.MatchText(strings.Join(args, " "))
	for _, span := range spans {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%s\t%s\n",
			span.Start, span.End,
			strings.Join(tokens[span.Start:span.End], " "),
			strings.Join(span.Types, ","))
	}
	return nil
}
