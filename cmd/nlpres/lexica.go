package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgard/nlpres/internal/lexica"
)

var nearestK int

var lexicaCmd = &cobra.Command{
	Use:   "lexica",
	Short: "Query word clusters and embeddings",
}

var lexicaSimilarCmd = &cobra.Command{
	Use:   "similar WORD WORD",
	Short: "Print the cosine similarity of two words",
	Args:  cobra.ExactArgs(2),
	RunE:  runLexicaSimilar,
}

var lexicaNearestCmd = &cobra.Command{
	Use:   "nearest WORD",
	Short: "Print the nearest neighbors of a word",
	Args:  cobra.ExactArgs(1),
	RunE:  runLexicaNearest,
}

var lexicaClusterCmd = &cobra.Command{
	Use:   "cluster WORD...",
	Short: "Print the cluster bit string of each word",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLexicaCluster,
}

func init() {
	lexicaNearestCmd.Flags().IntVarP(&nearestK, "top", "k", 10, "Number of neighbors")

	lexicaCmd.AddCommand(lexicaSimilarCmd)
	lexicaCmd.AddCommand(lexicaNearestCmd)
	lexicaCmd.AddCommand(lexicaClusterCmd)
	rootCmd.AddCommand(lexicaCmd)
}

func openLexica(cmd *cobra.Command) (*lexica.Resource, error) {
	lx := lexica.New(log)
	if err := openResource(cmd.Context(), lx); err != nil {
		return nil, err
	}
	return lx, nil
}

func runLexicaSimilar(cmd *cobra.Command, args []string) error {
	lx, err := openLexica(cmd)
	if err != nil {
		return err
	}
	defer lx.Close()

	sim, ok := lx.Similarity(args[0], args[1])
	if !ok {
		return fmt.Errorf("no vector for %q or %q", args[0], args[1])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", sim)
	return nil
}

func runLexicaNearest(cmd *cobra.Command, args []string) error {
	lx, err := openLexica(cmd)
	if err != nil {
		return err
	}
	defer lx.Close()

	neighbors, ok := lx.Nearest(args[0], nearestK)
	if !ok {
		return fmt.Errorf("no vector for %q", args[0])
	}
	for _, n := range neighbors {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f\n", n.Word, n.Similarity)
	}
	return nil
}

func runLexicaCluster(cmd *cobra.Command, args []string) error {
	lx, err := openLexica(cmd)
	if err != nil {
		return err
	}
	defer lx.Close()

	for _, word := range args {
		cluster, ok := lx.Cluster(word)
		if !ok {
			cluster = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", word, cluster)
	}
	return nil
}
